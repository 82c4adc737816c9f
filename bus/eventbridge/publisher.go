package eventbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/marcelsud/momento-webhook-relay/webhook"
)

// ErrEntryRejected is returned when EventBridge accepts the call but not the entry
var ErrEntryRejected = errors.New("eventbridge rejected entry")

// API is the subset of the EventBridge client the publisher needs
type API interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// Publisher sends events to an Amazon EventBridge bus
type Publisher struct {
	api API
}

// NewPublisher creates a publisher from an AWS configuration
func NewPublisher(cfg aws.Config) *Publisher {
	return NewPublisherWithAPI(eventbridge.NewFromConfig(cfg))
}

// NewPublisherWithAPI wraps an existing EventBridge client
func NewPublisherWithAPI(api API) *Publisher {
	return &Publisher{api: api}
}

// Publish puts a single entry on the event bus.
// PutEvents reports per-entry failures in its output rather than as an error,
// so a failed entry is turned into ErrEntryRejected.
func (p *Publisher) Publish(ctx context.Context, event webhook.Event) error {
	entry := types.PutEventsRequestEntry{
		Source:       aws.String(event.Source),
		DetailType:   aws.String(event.DetailType),
		Detail:       aws.String(string(event.Detail)),
		EventBusName: aws.String(event.BusName),
	}
	if !event.Time.IsZero() {
		entry.Time = aws.Time(event.Time)
	}

	out, err := p.api.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("putting events: %w", err)
	}

	if out.FailedEntryCount > 0 {
		for _, e := range out.Entries {
			if e.ErrorCode != nil {
				return fmt.Errorf("%w: %s: %s", ErrEntryRejected, aws.ToString(e.ErrorCode), aws.ToString(e.ErrorMessage))
			}
		}
		return ErrEntryRejected
	}

	return nil
}
