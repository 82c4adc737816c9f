package webhook

import (
	"math"
	"time"
)

// MaxAge is how old a publish timestamp may be before the request is considered stale
const MaxAge = 60 * time.Second

// CheckFreshness rejects payloads published MaxAge or more before now.
// Timestamps in the future are accepted: the gate only guards against replays of old
// messages, not against producer clock skew.
// A negative timestamp cannot be a publish time and is treated as malformed.
func CheckFreshness(publishTimestamp int64, now time.Time) Outcome {
	if publishTimestamp < 0 {
		return Rejected(MalformedPayload)
	}

	nowMillis := now.UnixMilli()
	if nowMillis < math.MinInt64+publishTimestamp {
		return Rejected(MalformedPayload)
	}

	age := nowMillis - publishTimestamp
	if age < MaxAge.Milliseconds() {
		return Accepted
	}
	return Rejected(Stale)
}
