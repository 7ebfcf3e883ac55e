// Package secrets loads a JSON secret from AWS Secrets Manager into the
// process environment before configuration is read.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretIDEnv names the secret to load. Loading is skipped when it is empty.
const SecretIDEnv = "QMS_SECRETS_ID"

// API is the subset of the Secrets Manager client used here.
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Result lists which variables were applied and which were already set.
type Result struct {
	Applied []string
	Skipped []string
}

// Bootstrap reads QMS_SECRETS_ID and AWS_REGION and exports the secret.
func Bootstrap(ctx context.Context) (*Result, error) {
	secretID := os.Getenv(SecretIDEnv)
	if secretID == "" {
		return &Result{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return Load(ctx, secretsmanager.NewFromConfig(awsCfg), secretID)
}

// Load fetches secretID and sets each key as an environment variable. A
// variable already present in the environment is left untouched.
func Load(ctx context.Context, api API, secretID string) (*Result, error) {
	out, err := api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", secretID)
	}

	values := map[string]string{}
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, fmt.Errorf("secret %s is not a flat JSON object: %w", secretID, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := &Result{}
	for _, k := range keys {
		if _, exists := os.LookupEnv(k); exists {
			res.Skipped = append(res.Skipped, k)
			continue
		}
		if err := os.Setenv(k, values[k]); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", k, err)
		}
		res.Applied = append(res.Applied, k)
	}
	return res, nil
}
