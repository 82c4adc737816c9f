package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/marcelsud/momento-webhook-relay/bus"
	"github.com/marcelsud/momento-webhook-relay/config"
	"github.com/marcelsud/momento-webhook-relay/secret"
	"github.com/marcelsud/momento-webhook-relay/secret/file"
	"github.com/marcelsud/momento-webhook-relay/secret/secretsmanager"
	"github.com/marcelsud/momento-webhook-relay/webhook"
	"github.com/rs/zerolog"
)

/* Relay wires configuration, the secret store and the event bus into a ready service
 * Both the HTTP server and the Lambda entry point start from here
 */
type Relay struct {
	Service *webhook.Service
	closer  bus.Closer
}

// Deps holds what the entry points may substitute, mostly for tests
type Deps struct {
	LoadAWS  bus.AWSConfigLoader
	Secrets  secret.Source
	Recorder webhook.Recorder
}

// LoadAWSConfig resolves the default AWS credential chain once
func LoadAWSConfig() bus.AWSConfigLoader {
	var (
		once sync.Once
		cfg  aws.Config
		err  error
	)
	return func(ctx context.Context) (aws.Config, error) {
		once.Do(func() {
			cfg, err = awsconfig.LoadDefaultConfig(ctx)
		})
		return cfg, err
	}
}

// New loads the secret, opens the bus and builds the service
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, deps Deps) (*Relay, error) {
	if deps.LoadAWS == nil {
		deps.LoadAWS = LoadAWSConfig()
	}

	src := deps.Secrets
	if src == nil {
		var err error
		src, err = secretSource(ctx, cfg, deps.LoadAWS)
		if err != nil {
			return nil, err
		}
	}

	sharedSecret, err := secret.Load(ctx, src, cfg.SecretID)
	if err != nil {
		return nil, fmt.Errorf("loading webhook secret: %w", err)
	}

	publisher, closer, err := bus.New(ctx, cfg, deps.LoadAWS)
	if err != nil {
		return nil, err
	}

	opts := []webhook.Option{webhook.WithLogger(logger)}
	if deps.Recorder != nil {
		opts = append(opts, webhook.WithRecorder(deps.Recorder))
	}

	logger.Info().
		Str("bus_driver", cfg.BusDriver).
		Str("bus", cfg.EventBusName).
		Str("secret_source", cfg.SecretSource).
		Msg("relay ready")

	return &Relay{
		Service: webhook.NewService(publisher, sharedSecret, cfg.EventBusName, opts...),
		closer:  closer,
	}, nil
}

// Close releases the bus connection
func (r *Relay) Close(ctx context.Context) error {
	if r.closer == nil {
		return nil
	}
	return r.closer(ctx)
}

func secretSource(ctx context.Context, cfg *config.Config, loadAWS bus.AWSConfigLoader) (secret.Source, error) {
	switch cfg.SecretSource {
	case config.SourceFile:
		src, err := file.NewSource(cfg.SecretsFile)
		if err != nil {
			return nil, fmt.Errorf("opening secrets file: %w", err)
		}
		return src, nil
	case config.SourceSecretsManager:
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		return secretsmanager.NewSource(awsCfg), nil
	}
	return nil, errors.Join(config.ErrUnknownSecretSource, fmt.Errorf("source %q", cfg.SecretSource))
}
