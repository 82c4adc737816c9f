package bus

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/marcelsud/momento-webhook-relay/bus/eventbridge"
	"github.com/marcelsud/momento-webhook-relay/bus/kafka"
	"github.com/marcelsud/momento-webhook-relay/bus/nats"
	"github.com/marcelsud/momento-webhook-relay/bus/redis"
	"github.com/marcelsud/momento-webhook-relay/config"
	"github.com/marcelsud/momento-webhook-relay/webhook"
)

// Closer releases the connection held by a publisher
type Closer func(ctx context.Context) error

func nopCloser(context.Context) error { return nil }

// AWSConfigLoader resolves AWS credentials and region, only called for the eventbridge driver
type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// New opens the publisher selected by cfg.BusDriver
func New(ctx context.Context, cfg *config.Config, loadAWS AWSConfigLoader) (webhook.Publisher, Closer, error) {
	switch cfg.BusDriver {
	case config.DriverEventBridge:
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading AWS config: %w", err)
		}
		return eventbridge.NewPublisher(awsCfg), nopCloser, nil

	case config.DriverRedis:
		p, err := redis.NewPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redisOptions(cfg)...)
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis bus: %w", err)
		}
		return p, p.Close, nil

	case config.DriverNATS:
		p, err := nats.NewPublisher(cfg.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("opening nats bus: %w", err)
		}
		return p, p.Close, nil

	case config.DriverKafka:
		p, err := kafka.NewPublisher(cfg.Brokers())
		if err != nil {
			return nil, nil, fmt.Errorf("opening kafka bus: %w", err)
		}
		return p, p.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.BusDriver)
}

// redisOptions maps stream settings from cfg onto the Redis publisher
func redisOptions(cfg *config.Config) []redis.Option {
	var opts []redis.Option
	if cfg.RedisMaxLen > 0 {
		opts = append(opts, redis.WithMaxLen(cfg.RedisMaxLen))
	}
	return opts
}
