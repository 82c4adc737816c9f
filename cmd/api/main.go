package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/momento-webhook-relay/config"
	"github.com/marcelsud/momento-webhook-relay/internal/http/chi"
	"github.com/marcelsud/momento-webhook-relay/internal/logger"
	"github.com/marcelsud/momento-webhook-relay/internal/relay"
	"github.com/marcelsud/momento-webhook-relay/metrics"
)

const TIMEOUT = 30 * time.Second

/* The entry and exit point of the relay server.
 * main wires config, secret store, event bus and metrics, then serves until a signal arrives.
 * Imports only go downwards: cmd imports the HTTP layer, which imports the relay service,
 * which depends on the bus interface.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	log, err := logger.New("momento-webhook-relay", cfg.LogLevel)
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	exporter, err := metrics.NewOTelExporter()
	if err != nil {
		log.Error().Err(err).Msg("creating metrics exporter")
		return
	}
	defer exporter.Shutdown(context.Background())
	recorder, err := exporter.Recorder()
	if err != nil {
		log.Error().Err(err).Msg("creating metrics recorder")
		return
	}

	r, err := relay.New(ctx, cfg, log, relay.Deps{Recorder: recorder})
	if err != nil {
		log.Error().Err(err).Msg("starting relay")
		return
	}
	defer r.Close(context.Background())

	h := chi.Handlers(ctx, r.Service, exporter.ServeHTTP(), log)
	http.Handle("/", h)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	log.Info().Str("port", cfg.Port).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("serving")
		return
	}
	err = <-errShutdown
	if err != nil {
		log.Error().Err(err).Msg("shutting down")
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
