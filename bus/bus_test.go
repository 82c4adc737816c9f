package bus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/marcelsud/momento-webhook-relay/bus"
	"github.com/marcelsud/momento-webhook-relay/bus/eventbridge"
	"github.com/marcelsud/momento-webhook-relay/bus/kafka"
	"github.com/marcelsud/momento-webhook-relay/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticAWS(ctx context.Context) (aws.Config, error) {
	return aws.Config{Region: "us-east-1"}, nil
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("eventbridge", func(t *testing.T) {
		p, closer, err := bus.New(ctx, &config.Config{BusDriver: config.DriverEventBridge}, staticAWS)
		require.NoError(t, err)
		assert.IsType(t, &eventbridge.Publisher{}, p)
		assert.NoError(t, closer(ctx))
	})

	t.Run("eventbridge - AWS config failure", func(t *testing.T) {
		awsErr := errors.New("no region")
		_, _, err := bus.New(ctx, &config.Config{BusDriver: config.DriverEventBridge},
			func(context.Context) (aws.Config, error) { return aws.Config{}, awsErr })
		assert.ErrorIs(t, err, awsErr)
	})

	t.Run("kafka without brokers", func(t *testing.T) {
		_, _, err := bus.New(ctx, &config.Config{BusDriver: config.DriverKafka}, staticAWS)
		assert.ErrorIs(t, err, kafka.ErrNoBrokers)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := bus.New(ctx, &config.Config{BusDriver: "smoke-signals"}, staticAWS)
		assert.ErrorIs(t, err, config.ErrUnknownDriver)
	})
}
