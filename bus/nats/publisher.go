package nats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/momento-webhook-relay/webhook"
	"github.com/nats-io/nats.go"
)

// Header names set on every published message
const (
	HeaderSource      = "Event-Source"
	HeaderDetailType  = "Event-Detail-Type"
	HeaderPublishedAt = "Event-Published-At"
)

// flushTimeout bounds the server round trip when the caller's context has no deadline
const flushTimeout = 5 * time.Second

// Conn is the subset of *nats.Conn the publisher needs
type Conn interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher sends events to a NATS subject named after the bus
type Publisher struct {
	conn Conn
}

// NewPublisher connects to the NATS server at url
func NewPublisher(url string, opts ...nats.Option) (*Publisher, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return NewPublisherWithConn(nc), nil
}

// NewPublisherWithConn wraps an existing connection
func NewPublisherWithConn(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Publish sends the event and flushes so a nil error means the server received it.
// Nats-Msg-Id carries the event id so JetStream streams deduplicate redeliveries.
func (p *Publisher) Publish(ctx context.Context, event webhook.Event) error {
	msg := nats.NewMsg(event.BusName)
	msg.Data = event.Detail
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	msg.Header.Set(HeaderSource, event.Source)
	msg.Header.Set(HeaderDetailType, event.DetailType)
	msg.Header.Set(HeaderPublishedAt, strconv.FormatInt(event.Time.UnixMilli(), 10))

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing to NATS: %w", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flushing NATS connection: %w", err)
	}
	return nil
}

// Close closes the NATS connection
func (p *Publisher) Close(ctx context.Context) error {
	p.conn.Close()
	return nil
}
