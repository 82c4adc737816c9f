package signature

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/sha3"
)

// HeaderName is the request header carrying the producer's signature
const HeaderName = "momento-signature"

// ErrEmptySecret is returned when a secret cannot key the HMAC
var ErrEmptySecret = errors.New("signing secret is empty")

// Secret is the shared webhook signing secret.
// String never reveals the value so a Secret can travel through loggers safely.
type Secret struct {
	raw []byte
}

// NewSecret wraps the secret string exactly as stored, without decoding
func NewSecret(value string) Secret {
	return Secret{raw: []byte(value)}
}

// String returns a redacted placeholder
func (s Secret) String() string {
	return "[REDACTED]"
}

// Bytes returns the raw secret bytes
func (s Secret) Bytes() []byte {
	return s.raw
}

// IsZero reports whether the secret is unset
func (s Secret) IsZero() bool {
	return len(s.raw) == 0
}

// Sign computes the lowercase hex HMAC-SHA3-256 of the canonical payload bytes.
// An empty secret is refused with ErrEmptySecret even though HMAC itself accepts an empty key.
func Sign(secret Secret, canonical []byte) (string, error) {
	if secret.IsZero() {
		return "", ErrEmptySecret
	}

	mac := hmac.New(sha3.New256, secret.Bytes())
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether sig is the signature of canonical under secret.
// The comparison is constant-time over the hex encodings; only lowercase hex matches.
func Verify(secret Secret, canonical []byte, sig string) (bool, error) {
	expected, err := Sign(secret, canonical)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(sig)) == 1, nil
}
