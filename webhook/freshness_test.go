package webhook_test

import (
	"math"
	"testing"
	"time"

	"github.com/marcelsud/momento-webhook-relay/webhook"
	"github.com/stretchr/testify/assert"
)

func TestCheckFreshness(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	nowMillis := now.UnixMilli()

	tests := []struct {
		name      string
		published int64
		want      webhook.Outcome
	}{
		{"published now", nowMillis, webhook.Accepted},
		{"five seconds old", nowMillis - 5_000, webhook.Accepted},
		{"59 seconds old", nowMillis - 59_000, webhook.Accepted},
		{"just under the limit", nowMillis - 59_999, webhook.Accepted},
		{"exactly 60 seconds old", nowMillis - 60_000, webhook.Rejected(webhook.Stale)},
		{"61 seconds old", nowMillis - 61_000, webhook.Rejected(webhook.Stale)},
		{"epoch", 0, webhook.Rejected(webhook.Stale)},
		// The gate only rejects staleness; producer clocks running ahead are tolerated.
		{"one hour in the future is accepted", nowMillis + int64(time.Hour/time.Millisecond), webhook.Accepted},
		{"far future is accepted", math.MaxInt64, webhook.Accepted},
		{"negative timestamp", -1, webhook.Rejected(webhook.MalformedPayload)},
		{"minimum int64", math.MinInt64, webhook.Rejected(webhook.MalformedPayload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webhook.CheckFreshness(tt.published, now))
		})
	}
}

func TestOutcome(t *testing.T) {
	t.Run("zero value is accepted", func(t *testing.T) {
		var o webhook.Outcome
		assert.True(t, o.IsAccepted())
		assert.Equal(t, "accepted", o.String())
	})

	t.Run("rejections carry their reason", func(t *testing.T) {
		reasons := map[webhook.Reason]string{
			webhook.MissingSignatureHeader: "missing_signature_header",
			webhook.MalformedPayload:       "malformed_payload",
			webhook.Stale:                  "stale",
			webhook.SignatureMismatch:      "signature_mismatch",
		}
		for reason, name := range reasons {
			o := webhook.Rejected(reason)
			assert.False(t, o.IsAccepted())
			assert.Equal(t, reason, o.Reason())
			assert.Equal(t, name, o.String())
		}
	})

	t.Run("unknown reason", func(t *testing.T) {
		assert.Equal(t, "unknown", webhook.Reason(999).String())
	})

	t.Run("zero reason is never accepted", func(t *testing.T) {
		o := webhook.Rejected(webhook.Reason(0))
		assert.False(t, o.IsAccepted())
		assert.NotEqual(t, webhook.Accepted, o)
		assert.Equal(t, webhook.MalformedPayload, o.Reason())
	})
}

func TestRespond(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		r := webhook.Respond(webhook.Accepted)
		assert.Equal(t, 200, r.StatusCode)
		assert.JSONEq(t, `{"message":"Success"}`, string(r.Body()))
	})

	t.Run("every rejection looks the same", func(t *testing.T) {
		for _, reason := range []webhook.Reason{
			webhook.MissingSignatureHeader,
			webhook.MalformedPayload,
			webhook.Stale,
			webhook.SignatureMismatch,
		} {
			r := webhook.Respond(webhook.Rejected(reason))
			assert.Equal(t, 403, r.StatusCode)
			assert.Equal(t, `{"message":"Unauthorized"}`, string(r.Body()))
		}
	})
}
