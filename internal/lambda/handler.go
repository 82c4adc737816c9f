package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/marcelsud/momento-webhook-relay/webhook"
)

/* Handler adapts Lambda function URL invocations to the relay service
 * A delivery failure is returned as an invocation error so the platform
 * reports it, exactly like the HTTP server answers 500
 */
type Handler struct {
	relay webhook.UseCase
}

// NewHandler creates a Lambda handler around the relay service
func NewHandler(relay webhook.UseCase) *Handler {
	return &Handler{relay: relay}
}

// Handle processes one function URL request
func (h *Handler) Handle(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return toResponse(webhook.Unauthorized), nil
		}
		body = decoded
	}

	resp, err := h.relay.Handle(ctx, body, toHeader(req.Headers))
	if err != nil {
		return events.LambdaFunctionURLResponse{}, fmt.Errorf("handling webhook: %w", err)
	}
	return toResponse(resp), nil
}

// toHeader canonicalizes the lowercase keys Lambda delivers
func toHeader(in map[string]string) http.Header {
	headers := make(http.Header, len(in))
	for k, v := range in {
		headers.Set(k, v)
	}
	return headers
}

func toResponse(resp webhook.Response) events.LambdaFunctionURLResponse {
	return events.LambdaFunctionURLResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"content-type": webhook.ContentType},
		Body:       string(resp.Body()),
	}
}
