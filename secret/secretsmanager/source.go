package secretsmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ErrNoSecretString is returned for binary secrets, which the relay does not use
var ErrNoSecretString = errors.New("secret has no string value")

// API is the subset of the Secrets Manager client used by Source
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Source reads secrets from AWS Secrets Manager
type Source struct {
	api API
}

// NewSource creates a Source from an AWS configuration
func NewSource(cfg aws.Config) *Source {
	return NewSourceWithAPI(secretsmanager.NewFromConfig(cfg))
}

// NewSourceWithAPI wraps an existing client
func NewSourceWithAPI(api API) *Source {
	return &Source{api: api}
}

// SecretString returns the current string value of the secret
func (s *Source) SecretString(ctx context.Context, id string) (string, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("getting secret value: %w", err)
	}
	if out.SecretString == nil {
		return "", ErrNoSecretString
	}
	return *out.SecretString, nil
}
