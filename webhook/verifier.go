package webhook

import (
	"net/http"
	"time"

	"github.com/marcelsud/momento-webhook-relay/webhook/payload"
	"github.com/marcelsud/momento-webhook-relay/webhook/signature"
)

/* Verified is a request that passed the whole pipeline
 * Canonical holds the exact bytes that were signed and must be the bytes forwarded
 */
type Verified struct {
	Payload   payload.Payload
	Canonical []byte
}

// ParseRequest extracts the signature header and decodes the body.
// The header is checked first so unsigned requests are never parsed.
func ParseRequest(body []byte, headers http.Header) (payload.Payload, string, Outcome) {
	sig := headers.Get(signature.HeaderName)
	if sig == "" {
		return payload.Payload{}, "", Rejected(MissingSignatureHeader)
	}

	p, err := payload.Parse(body)
	if err != nil {
		return payload.Payload{}, "", Rejected(MalformedPayload)
	}

	return p, sig, Accepted
}

// Verify runs the validation pipeline on a raw request.
// Stages run in order and the first failure decides the outcome:
// parse, signature, then freshness. Freshness is only evaluated for
// authenticated payloads so a stale reason is never reported for a forgery.
func Verify(body []byte, headers http.Header, secret signature.Secret, now time.Time) (Verified, Outcome) {
	p, sig, outcome := ParseRequest(body, headers)
	if !outcome.IsAccepted() {
		return Verified{}, outcome
	}

	canonical := p.Canonical()

	valid, err := signature.Verify(secret, canonical, sig)
	if err != nil || !valid {
		return Verified{}, Rejected(SignatureMismatch)
	}

	if outcome := CheckFreshness(p.PublishTimestamp, now); !outcome.IsAccepted() {
		return Verified{}, outcome
	}

	return Verified{Payload: p, Canonical: canonical}, Accepted
}
