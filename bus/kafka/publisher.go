package kafka

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/marcelsud/momento-webhook-relay/webhook"
)

// Record header keys set on every produced message
const (
	HeaderSource      = "event-source"
	HeaderDetailType  = "event-detail-type"
	HeaderPublishedAt = "event-published-at"
)

// ErrNoBrokers is returned when the publisher is built without a broker list
var ErrNoBrokers = errors.New("kafka publisher: at least one broker is required")

// Publisher produces events to a Kafka topic named after the bus
type Publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher creates a synchronous producer connected to brokers
func NewPublisher(brokers []string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	producer, err := sarama.NewSyncProducer(brokers, DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: create sync producer: %w", err)
	}
	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer}
}

// DefaultConfig waits for all in-sync replicas and disables producer retries,
// so a failed send is reported to the caller instead of being retried
func DefaultConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 0
	cfg.Producer.Return.Errors = true
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 10 * time.Second
	return cfg
}

// Publish sends the event keyed by its id and waits for the broker acknowledgement
func (p *Publisher) Publish(ctx context.Context, event webhook.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: event.BusName,
		Key:   sarama.StringEncoder(event.ID),
		Value: sarama.ByteEncoder(event.Detail),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderSource), Value: []byte(event.Source)},
			{Key: []byte(HeaderDetailType), Value: []byte(event.DetailType)},
			{Key: []byte(HeaderPublishedAt), Value: []byte(strconv.FormatInt(event.Time.UnixMilli(), 10))},
		},
	}
	if !event.Time.IsZero() {
		msg.Timestamp = event.Time
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka publisher: send: %w", err)
	}
	return nil
}

// Close flushes and closes the producer
func (p *Publisher) Close(ctx context.Context) error {
	return p.producer.Close()
}
