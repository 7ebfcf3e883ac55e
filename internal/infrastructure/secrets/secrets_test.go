package secrets

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, *params.SecretId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.GetSecretValueOutput), args.Error(1)
}

func TestLoad_ExistingEnvWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("S3_BUCKET_NAME", "")
	os.Unsetenv("S3_BUCKET_NAME")
	t.Cleanup(func() { os.Unsetenv("S3_BUCKET_NAME") })

	api := new(mockAPI)
	api.On("GetSecretValue", mock.Anything, "qms/prod").Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"JWT_SECRET":"from-secret","S3_BUCKET_NAME":"qms-prod"}`),
	}, nil)

	res, err := Load(context.Background(), api, "qms/prod")

	require.NoError(t, err)
	assert.Equal(t, []string{"S3_BUCKET_NAME"}, res.Applied)
	assert.Equal(t, []string{"JWT_SECRET"}, res.Skipped)
	assert.Equal(t, "from-env", os.Getenv("JWT_SECRET"))
	assert.Equal(t, "qms-prod", os.Getenv("S3_BUCKET_NAME"))
}

func TestLoad_Errors(t *testing.T) {
	api := new(mockAPI)
	api.On("GetSecretValue", mock.Anything, "missing").Return(nil, errors.New("ResourceNotFoundException"))
	api.On("GetSecretValue", mock.Anything, "binary").Return(&secretsmanager.GetSecretValueOutput{}, nil)
	api.On("GetSecretValue", mock.Anything, "nested").Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"A":{"B":"c"}}`),
	}, nil)

	for _, id := range []string{"missing", "binary", "nested"} {
		_, err := Load(context.Background(), api, id)
		assert.Error(t, err, id)
	}
}

func TestBootstrap_SkipsWithoutSecretID(t *testing.T) {
	t.Setenv(SecretIDEnv, "")

	res, err := Bootstrap(context.Background())

	require.NoError(t, err)
	assert.Empty(t, res.Applied)
}
