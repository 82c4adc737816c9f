package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/momento-webhook-relay/webhook"
	"github.com/redis/go-redis/v9"
)

/* Redis Streams implementation of webhook.Publisher
 * Each bus is a stream named after it; consumers attach their own consumer groups
 */

const streamPrefix = "events" // Stream naming: events:{bus_name}

type Publisher struct {
	client *redis.Client
	maxLen int64
}

// Option customises the publisher during construction
type Option func(*Publisher)

// WithMaxLen caps each stream at roughly n entries (XADD MAXLEN ~); zero leaves streams unbounded
func WithMaxLen(n int64) Option {
	return func(p *Publisher) {
		p.maxLen = n
	}
}

// NewPublisher creates a new Redis publisher and checks the connection
func NewPublisher(addr, password string, db int, opts ...Option) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewPublisherWithClient(client, opts...), nil
}

// NewPublisherWithClient wraps an existing client
func NewPublisherWithClient(client *redis.Client, opts ...Option) *Publisher {
	p := &Publisher{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish appends the event to the bus stream
func (p *Publisher) Publish(ctx context.Context, event webhook.Event) error {
	args := &redis.XAddArgs{
		Stream: StreamKey(event.BusName),
		Values: map[string]interface{}{
			"id":           event.ID,
			"source":       event.Source,
			"detail_type":  event.DetailType,
			"detail":       event.Detail,
			"published_at": event.Time.UnixMilli(),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("adding to stream: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (p *Publisher) Close(ctx context.Context) error {
	return p.client.Close()
}

// StreamKey returns the stream an event bus maps to
func StreamKey(busName string) string {
	return fmt.Sprintf("%s:%s", streamPrefix, busName)
}
