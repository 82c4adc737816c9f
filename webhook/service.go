package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/momento-webhook-relay/webhook/signature"
	"github.com/rs/zerolog"
)

// ErrDelivery wraps every failure to hand an accepted event to the bus
var ErrDelivery = errors.New("forwarding event")

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 * All fields are set once at startup and only read afterwards, so a single
 * Service is shared by concurrent requests without locking
 */

// UseCase defines the operation exposed to transports (HTTP server, Lambda)
type UseCase interface {
	Handle(ctx context.Context, body []byte, headers http.Header) (Response, error)
}

type Service struct {
	publisher Publisher
	secret    signature.Secret
	busName   string
	now       func() time.Time
	logger    zerolog.Logger
	recorder  Recorder
}

// Option customises a Service during construction
type Option func(*Service)

// WithClock overrides the wall clock used by the freshness gate
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for rejections and forwarded events
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRecorder attaches a metrics recorder
func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// NewService creates a new relay service with dependency injection
func NewService(publisher Publisher, secret signature.Secret, busName string, opts ...Option) *Service {
	s := &Service{
		publisher: publisher,
		secret:    secret,
		busName:   busName,
		now:       time.Now,
		logger:    zerolog.Nop(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle validates one webhook request and forwards it when accepted.
// Rejections are not errors: they produce the Unauthorized response.
// An error is only returned when an accepted event could not be delivered.
func (s *Service) Handle(ctx context.Context, body []byte, headers http.Header) (Response, error) {
	verified, outcome := Verify(body, headers, s.secret, s.now())
	s.recorder.RecordOutcome(ctx, outcome)

	if !outcome.IsAccepted() {
		s.logger.Warn().
			Str("reason", outcome.String()).
			Msg("webhook rejected")
		return Respond(outcome), nil
	}

	event := Event{
		ID:         uuid.New().String(),
		Source:     EventSource,
		DetailType: EventDetailType,
		Detail:     verified.Canonical,
		BusName:    s.busName,
		Time:       s.now(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.recorder.RecordForwardFailure(ctx)
		s.logger.Error().
			Err(err).
			Str("event_id", event.ID).
			Str("bus", s.busName).
			Msg("forwarding event failed")
		return Response{}, fmt.Errorf("%w %s: %w", ErrDelivery, event.ID, err)
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("cache", verified.Payload.Cache).
		Str("topic", verified.Payload.Topic).
		Int64("topic_sequence_number", verified.Payload.TopicSequenceNumber).
		Int64("publish_timestamp", verified.Payload.PublishTimestamp).
		Msg("webhook forwarded")

	return Respond(outcome), nil
}
