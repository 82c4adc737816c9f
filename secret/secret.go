package secret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marcelsud/momento-webhook-relay/webhook/signature"
)

// DefaultID is the identifier the relay's secret is stored under
const DefaultID = "MomentoWebhookSecretKey"

// ErrEmptySecret is returned when the stored document has no usable secret.
// An empty string is refused here rather than used as an empty HMAC key.
var ErrEmptySecret = errors.New("momentoSecret is missing or empty")

// Source fetches a raw secret document by identifier
type Source interface {
	SecretString(ctx context.Context, id string) (string, error)
}

type document struct {
	MomentoSecret string `json:"momentoSecret"`
}

// Load fetches the secret document and extracts the shared signing secret
func Load(ctx context.Context, src Source, id string) (signature.Secret, error) {
	raw, err := src.SecretString(ctx, id)
	if err != nil {
		return signature.Secret{}, fmt.Errorf("fetching secret %s: %w", id, err)
	}
	return Parse(raw)
}

// Parse decodes a {"momentoSecret": "..."} document
func Parse(raw string) (signature.Secret, error) {
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return signature.Secret{}, fmt.Errorf("decoding secret document: %w", err)
	}
	if doc.MomentoSecret == "" {
		return signature.Secret{}, ErrEmptySecret
	}
	return signature.NewSecret(doc.MomentoSecret), nil
}
