package chi

import (
	"io"
	"net/http"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/momento-webhook-relay/webhook"
)

// maxBodyBytes bounds the webhook body read into memory
const maxBodyBytes = 1 << 20

// postWebhook hands the raw body and headers to the relay and writes its JSON response.
// The body is passed through untouched: the signature is checked against its parsed form.
func postWebhook(relayService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			httplog.LogEntrySetField(r.Context(), "read_error", err.Error())
			writeResponse(w, webhook.Unauthorized)
			return
		}

		resp, err := relayService.Handle(r.Context(), body, r.Header)
		if err != nil {
			oplog := httplog.LogEntry(r.Context())
			oplog.Error().Err(err).Msg("relaying webhook")
			writeResponse(w, webhook.InternalError)
			return
		}

		writeResponse(w, resp)
	})
}

func writeResponse(w http.ResponseWriter, resp webhook.Response) {
	w.Header().Set("Content-Type", webhook.ContentType)
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body())
}
