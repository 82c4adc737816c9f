package relay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/marcelsud/momento-webhook-relay/config"
	"github.com/marcelsud/momento-webhook-relay/secret"
	"github.com/marcelsud/momento-webhook-relay/secret/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		EventBusName: "momento-events",
		SecretID:     secret.DefaultID,
		SecretSource: config.SourceSecretsManager,
		BusDriver:    config.DriverEventBridge,
	}
}

func staticAWS(ctx context.Context) (aws.Config, error) {
	return aws.Config{Region: "us-east-1"}, nil
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("success - injected secret source", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("SecretString", mock.Anything, secret.DefaultID).Return(`{"momentoSecret":"s3cr3t"}`, nil).Once()

		r, err := New(ctx, testConfig(), zerolog.Nop(), Deps{LoadAWS: staticAWS, Secrets: src})
		require.NoError(t, err)
		assert.NotNil(t, r.Service)
		assert.NoError(t, r.Close(ctx))
	})

	t.Run("success - secrets file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secrets.yaml")
		require.NoError(t, os.WriteFile(path, []byte("secrets:\n  MomentoWebhookSecretKey: '{\"momentoSecret\": \"s3cr3t\"}'\n"), 0o600))

		cfg := testConfig()
		cfg.SecretSource = config.SourceFile
		cfg.SecretsFile = path

		r, err := New(ctx, cfg, zerolog.Nop(), Deps{LoadAWS: staticAWS})
		require.NoError(t, err)
		assert.NotNil(t, r.Service)
	})

	t.Run("error - empty secret aborts startup", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("SecretString", mock.Anything, secret.DefaultID).Return(`{"momentoSecret":""}`, nil).Once()

		_, err := New(ctx, testConfig(), zerolog.Nop(), Deps{LoadAWS: staticAWS, Secrets: src})
		assert.ErrorIs(t, err, secret.ErrEmptySecret)
	})

	t.Run("error - AWS config unavailable", func(t *testing.T) {
		awsErr := errors.New("no credentials")
		_, err := New(ctx, testConfig(), zerolog.Nop(), Deps{
			LoadAWS: func(context.Context) (aws.Config, error) { return aws.Config{}, awsErr },
		})
		assert.ErrorIs(t, err, awsErr)
	})

	t.Run("error - unknown bus driver", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("SecretString", mock.Anything, secret.DefaultID).Return(`{"momentoSecret":"s3cr3t"}`, nil).Once()

		cfg := testConfig()
		cfg.BusDriver = "pigeon"
		_, err := New(ctx, cfg, zerolog.Nop(), Deps{LoadAWS: staticAWS, Secrets: src})
		assert.ErrorIs(t, err, config.ErrUnknownDriver)
	})

	t.Run("error - unknown secret source", func(t *testing.T) {
		cfg := testConfig()
		cfg.SecretSource = "vault"
		_, err := New(ctx, cfg, zerolog.Nop(), Deps{LoadAWS: staticAWS})
		assert.ErrorIs(t, err, config.ErrUnknownSecretSource)
	})
}
