package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcelsud/momento-webhook-relay/metrics"
	"github.com/marcelsud/momento-webhook-relay/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, exporter *metrics.OTelExporter) string {
	t.Helper()

	rec := httptest.NewRecorder()
	exporter.ServeHTTP().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()

	exporter, err := metrics.NewOTelExporter()
	require.NoError(t, err)
	defer exporter.Shutdown(ctx)

	recorder, err := exporter.Recorder()
	require.NoError(t, err)

	var _ webhook.Recorder = recorder

	recorder.RecordOutcome(ctx, webhook.Accepted)
	recorder.RecordOutcome(ctx, webhook.Accepted)
	recorder.RecordOutcome(ctx, webhook.Rejected(webhook.Stale))
	recorder.RecordForwardFailure(ctx)

	body := scrape(t, exporter)

	assert.Contains(t, body, "relay_requests_total")
	assert.Contains(t, body, `outcome="accepted"`)
	assert.Contains(t, body, `outcome="stale"`)
	assert.Contains(t, body, "relay_forward_failures_total")
	assert.NotContains(t, body, `outcome="signature_mismatch"`)
}

func TestOTelExporter_Shutdown(t *testing.T) {
	exporter, err := metrics.NewOTelExporter()
	require.NoError(t, err)

	assert.NoError(t, exporter.Shutdown(context.Background()))
}
