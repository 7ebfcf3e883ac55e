package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/entity"
)

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockObjectAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*v4.PresignedHTTPRequest), args.Error(1)
}

func newTestGateway(api *mockObjectAPI, presigner *mockPresigner) *Gateway {
	g := NewGatewayWithAPI(api, presigner, Config{Region: "eu-west-1", Bucket: "qms-test"}, zap.NewNop())
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return g
}

func TestObjectKey(t *testing.T) {
	id := uint(42)
	at := time.UnixMilli(1700000000123)

	assert.Equal(t, "processes/Finance/42_1700000000123_plan.pdf",
		ObjectKey("processes", "Finance", &id, at, "plan.pdf"))
	assert.Equal(t, "documents/Human_Resources/1700000000123_Leave_policy.docx",
		ObjectKey("documents", "Human Resources", nil, at, "Leave policy.docx"))
}

func TestGateway_AreaPrefix(t *testing.T) {
	g := newTestGateway(new(mockObjectAPI), new(mockPresigner))
	id := uint(9)
	at := time.UnixMilli(1700000000000)

	prefix := g.AreaPrefix("documents", "Human Resources")
	assert.Equal(t, "documents/Human_Resources/", prefix)
	assert.True(t, strings.HasPrefix(ObjectKey("documents", "Human Resources", &id, at, "a.pdf"), prefix))
	assert.True(t, strings.HasPrefix(ObjectKey("documents", "Human Resources", nil, at, "a.pdf"), prefix))
	assert.False(t, strings.HasPrefix(ObjectKey("documents", "Finance", &id, at, "a.pdf"), prefix))
	assert.False(t, strings.HasPrefix(ObjectKey("risks", "Human Resources", &id, at, "a.pdf"), prefix))
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "risks", KeyPrefix("risks/Finance/1_2_a.pdf"))
	assert.Equal(t, "orphan", KeyPrefix("orphan"))
}

func TestGateway_Upload(t *testing.T) {
	api := new(mockObjectAPI)
	g := newTestGateway(api, new(mockPresigner))
	id := uint(7)

	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "qms-test" &&
			*in.Key == "risks/Finance/7_1700000000000_register.xlsx" &&
			in.ACL == s3types.ObjectCannedACLPrivate &&
			*in.ContentType == "application/vnd.ms-excel"
	})).Return(&s3.PutObjectOutput{}, nil)

	out, err := g.Upload(context.Background(), entity.FileUpload{
		Body:         strings.NewReader("data"),
		FileName:     "register.xlsx",
		ContentType:  "application/vnd.ms-excel",
		Size:         4,
		BusinessArea: "Finance",
		DocumentType: "risks",
		RecordID:     &id,
	})

	require.NoError(t, err)
	assert.Equal(t, "risks/Finance/7_1700000000000_register.xlsx", out.Key)
	assert.Equal(t, "https://qms-test.s3.eu-west-1.amazonaws.com/risks/Finance/7_1700000000000_register.xlsx", out.URL)
	assert.Equal(t, int64(4), out.FileSize)
	api.AssertExpectations(t)
}

func TestGateway_UploadError(t *testing.T) {
	api := new(mockObjectAPI)
	g := newTestGateway(api, new(mockPresigner))
	api.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := g.Upload(context.Background(), entity.FileUpload{Body: strings.NewReader(""), FileName: "a.txt", DocumentType: "processes", BusinessArea: "Ops"})

	assert.Error(t, err)
}

func TestGateway_SignedURLIsCachedUntilDelete(t *testing.T) {
	api := new(mockObjectAPI)
	presigner := new(mockPresigner)
	g := newTestGateway(api, presigner)
	key := "documents/Finance/1_1_a.pdf"

	presigner.On("PresignGetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Key == key
	})).Return(&v4.PresignedHTTPRequest{URL: "https://signed/1"}, nil).Twice()
	api.On("DeleteObject", mock.Anything, mock.Anything).Return(&s3.DeleteObjectOutput{}, nil).Once()

	url1, exp1, err := g.SignedURL(context.Background(), key)
	require.NoError(t, err)
	url2, exp2, err := g.SignedURL(context.Background(), key)
	require.NoError(t, err)

	assert.Equal(t, url1, url2)
	assert.Equal(t, exp1, exp2)
	assert.Equal(t, time.UnixMilli(1700000000000).Add(time.Hour), exp1)
	presigner.AssertNumberOfCalls(t, "PresignGetObject", 1)

	require.NoError(t, g.Delete(context.Background(), key))

	_, _, err = g.SignedURL(context.Background(), key)
	require.NoError(t, err)
	presigner.AssertNumberOfCalls(t, "PresignGetObject", 2)
}
