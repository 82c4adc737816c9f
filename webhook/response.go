package webhook

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type of every relay response
const ContentType = "application/json"

// Response is the HTTP-agnostic result of handling one webhook
type Response struct {
	StatusCode int
	Message    string
}

var (
	// Success is returned once the event is on the bus
	Success = Response{StatusCode: http.StatusOK, Message: "Success"}

	// Unauthorized is returned for every rejection, whatever the reason
	Unauthorized = Response{StatusCode: http.StatusForbidden, Message: "Unauthorized"}

	// InternalError is returned by transports when an accepted event could not be forwarded
	InternalError = Response{StatusCode: http.StatusInternalServerError, Message: "Internal Server Error"}
)

// Respond maps a pipeline outcome to its response
func Respond(outcome Outcome) Response {
	if outcome.IsAccepted() {
		return Success
	}
	return Unauthorized
}

type responseBody struct {
	Message string `json:"message"`
}

// Body returns the JSON document sent to the caller
func (r Response) Body() []byte {
	// marshaling a single string field cannot fail
	b, _ := json.Marshal(responseBody{Message: r.Message})
	return b
}
