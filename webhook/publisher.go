package webhook

import (
	"context"
	"time"
)

const (
	// EventSource labels every event relayed to the bus
	EventSource = "webhook"

	// EventDetailType labels the kind of event relayed to the bus
	EventDetailType = "New Chat Message"
)

/* Event is what the relay emits for an accepted webhook
 * Uses value semantics as it represents data, not behavior
 */
type Event struct {
	ID         string
	Source     string
	DetailType string
	Detail     []byte
	BusName    string
	Time       time.Time
}

// Publisher delivers events to an event bus
type Publisher interface {
	/* Publish sends exactly one event and waits for the bus to accept it
	 * Implementations must not retry; a returned error means the event was not delivered
	 */
	Publish(ctx context.Context, event Event) error
}

// Recorder observes pipeline results, typically for metrics
type Recorder interface {
	RecordOutcome(ctx context.Context, outcome Outcome)
	RecordForwardFailure(ctx context.Context)
}

type nopRecorder struct{}

func (nopRecorder) RecordOutcome(context.Context, Outcome) {}
func (nopRecorder) RecordForwardFailure(context.Context)   {}
