package webhook

/* Reason explains why a webhook request was rejected
 * Every reason maps to the same 403 response, the distinction only reaches logs and metrics
 */
type Reason int

const (
	MissingSignatureHeader Reason = iota + 1
	MalformedPayload
	Stale
	SignatureMismatch
)

// String returns the string representation of the reason
func (r Reason) String() string {
	switch r {
	case MissingSignatureHeader:
		return "missing_signature_header"
	case MalformedPayload:
		return "malformed_payload"
	case Stale:
		return "stale"
	case SignatureMismatch:
		return "signature_mismatch"
	default:
		return "unknown"
	}
}

/* Outcome is the all-or-nothing result of the validation pipeline
 * The zero value is Accepted
 */
type Outcome struct {
	reason Reason
}

// Accepted is the outcome of a request that passed every check
var Accepted = Outcome{}

// Rejected returns a failed outcome carrying its reason; a zero reason is recorded as MalformedPayload
func Rejected(reason Reason) Outcome {
	if reason == 0 {
		reason = MalformedPayload
	}
	return Outcome{reason: reason}
}

// IsAccepted reports whether the request passed every check
func (o Outcome) IsAccepted() bool {
	return o.reason == 0
}

// Reason returns why the request was rejected, or 0 when it was accepted
func (o Outcome) Reason() Reason {
	return o.reason
}

// String returns "accepted" or the rejection reason
func (o Outcome) String() string {
	if o.IsAccepted() {
		return "accepted"
	}
	return o.reason.String()
}
