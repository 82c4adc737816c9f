package metrics

import (
	"context"
	"fmt"

	"github.com/marcelsud/momento-webhook-relay/webhook"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names
const (
	RequestsCounter        = "relay.requests"
	ForwardFailuresCounter = "relay.forward.failures"

	// OutcomeAttribute labels each request with its pipeline outcome
	OutcomeAttribute = "outcome"
)

// Recorder counts pipeline outcomes and failed deliveries.
// It implements webhook.Recorder.
type Recorder struct {
	requests        metric.Int64Counter
	forwardFailures metric.Int64Counter
}

// NewRecorder registers the relay instruments on meter
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	requests, err := meter.Int64Counter(
		RequestsCounter,
		metric.WithDescription("Number of webhook requests by outcome"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	forwardFailures, err := meter.Int64Counter(
		ForwardFailuresCounter,
		metric.WithDescription("Number of accepted events the bus did not take"),
		metric.WithUnit("{events}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating forward failures counter: %w", err)
	}

	return &Recorder{
		requests:        requests,
		forwardFailures: forwardFailures,
	}, nil
}

// RecordOutcome counts one request
func (r *Recorder) RecordOutcome(ctx context.Context, outcome webhook.Outcome) {
	r.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String(OutcomeAttribute, outcome.String()),
	))
}

// RecordForwardFailure counts one failed delivery
func (r *Recorder) RecordForwardFailure(ctx context.Context) {
	r.forwardFailures.Add(ctx, 1)
}
