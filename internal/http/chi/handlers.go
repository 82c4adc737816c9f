package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/momento-webhook-relay/webhook"
	"github.com/rs/zerolog"
)

const requestTimeout = 30 * time.Second

// Handlers sets up the relay routes.
// POST / keeps the function-URL contract; POST /v1/webhook is the versioned alias.
// metricsHandler may be nil, in which case /metrics is not served.
func Handlers(ctx context.Context, relayService webhook.UseCase, metricsHandler http.Handler, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Method(http.MethodPost, "/", postWebhook(relayService))
	r.Method(http.MethodPost, "/v1/webhook", postWebhook(relayService))

	return r
}
