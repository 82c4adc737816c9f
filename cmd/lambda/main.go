package main

import (
	"context"
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/marcelsud/momento-webhook-relay/config"
	"github.com/marcelsud/momento-webhook-relay/internal/lambda"
	"github.com/marcelsud/momento-webhook-relay/internal/logger"
	"github.com/marcelsud/momento-webhook-relay/internal/relay"
)

/* Lambda entry point behind a function URL.
 * The secret is fetched once per cold start and reused by warm invocations.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New("momento-webhook-relay", cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	r, err := relay.New(ctx, cfg, log, relay.Deps{})
	if err != nil {
		log.Error().Err(err).Msg("starting relay")
		os.Exit(1)
	}
	defer r.Close(ctx)

	awslambda.Start(lambda.NewHandler(r.Service).Handle)
}
