package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/marcelsud/momento-webhook-relay/secret"
	"github.com/marcelsud/momento-webhook-relay/secret/file"
	"github.com/marcelsud/momento-webhook-relay/webhook/payload"
	"github.com/marcelsud/momento-webhook-relay/webhook/signature"
)

/* sign-payload - Standalone CLI tool that signs a webhook payload the way Momento does
 * Usage: go run cmd/sign-payload/main.go payload.json [secrets.yaml]
 * The publish timestamp is reset to now so the output passes the freshness check.
 * Exit codes: 0 = signed, 1 = error
 */

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	if len(args) < 1 {
		fmt.Fprintf(stderr, "usage: sign-payload payload.json [secrets.yaml]\n")
		return 1
	}
	secretsFile := "secrets.yaml"
	if len(args) > 1 {
		secretsFile = args[1]
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: reading payload: %v\n", err)
		return 1
	}
	p, err := payload.Parse(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: parsing payload: %v\n", err)
		return 1
	}
	p.PublishTimestamp = now().UnixMilli()

	src, err := file.NewSource(secretsFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	id := os.Getenv("SECRET_ID")
	if id == "" {
		id = secret.DefaultID
	}
	s, err := secret.Load(ctx, src, id)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	body := p.Canonical()
	sig, err := signature.Sign(s, body)
	if err != nil {
		fmt.Fprintf(stderr, "Error: signing: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "%s: %s\n", signature.HeaderName, sig)
	fmt.Fprintf(stdout, "%s\n", body)
	return 0
}
