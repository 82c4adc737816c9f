package signature

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonical = []byte(`{"cache":"c1","topic":"t1","event_timestamp":1000,"publish_timestamp":2000,"topic_sequence_number":1,"token_id":null,"text":"hi"}`)

func TestSecret(t *testing.T) {
	t.Run("string is redacted", func(t *testing.T) {
		s := NewSecret("s3cr3t")
		assert.Equal(t, "[REDACTED]", s.String())
		assert.NotContains(t, fmt.Sprintf("%v %s", s, s), "s3cr3t")
	})

	t.Run("bytes are the raw value", func(t *testing.T) {
		assert.Equal(t, []byte("s3cr3t"), NewSecret("s3cr3t").Bytes())
	})

	t.Run("zero value", func(t *testing.T) {
		assert.True(t, Secret{}.IsZero())
		assert.True(t, NewSecret("").IsZero())
		assert.False(t, NewSecret("x").IsZero())
	})
}

func TestSign(t *testing.T) {
	secret := NewSecret("s3cr3t")

	t.Run("success - matches HMAC-SHA3-256 hex", func(t *testing.T) {
		const want = "f1e462a9bdbc0e3524bb8593cec68e4d7527cfb1b2696cbf4d5e2801a804835d"

		sig, err := Sign(secret, canonical)
		require.NoError(t, err)
		assert.Equal(t, want, sig)
		assert.Len(t, sig, 64)
		assert.Equal(t, strings.ToLower(sig), sig)
	})

	t.Run("success - same inputs produce same signature", func(t *testing.T) {
		sig1, err1 := Sign(secret, canonical)
		sig2, err2 := Sign(secret, canonical)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, sig1, sig2)
	})

	t.Run("success - different secrets produce different signatures", func(t *testing.T) {
		sig1, err1 := Sign(secret, canonical)
		sig2, err2 := Sign(NewSecret("other"), canonical)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, sig1, sig2)
	})

	t.Run("error - empty secret", func(t *testing.T) {
		_, err := Sign(Secret{}, canonical)
		require.ErrorIs(t, err, ErrEmptySecret)
	})
}

func TestVerify(t *testing.T) {
	secret := NewSecret("s3cr3t")
	sig, err := Sign(secret, canonical)
	require.NoError(t, err)

	tests := []struct {
		name      string
		secret    Secret
		canonical []byte
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			secret:    secret,
			canonical: canonical,
			signature: sig,
			want:      true,
		},
		{
			name:      "wrong secret",
			secret:    NewSecret("wrong"),
			canonical: canonical,
			signature: sig,
			want:      false,
		},
		{
			name:      "tampered payload",
			secret:    secret,
			canonical: []byte(strings.Replace(string(canonical), `"hi"`, `"hacked"`, 1)),
			signature: sig,
			want:      false,
		},
		{
			name:      "uppercase hex",
			secret:    secret,
			canonical: canonical,
			signature: strings.ToUpper(sig),
			want:      false,
		},
		{
			name:      "truncated signature",
			secret:    secret,
			canonical: canonical,
			signature: sig[:63],
			want:      false,
		},
		{
			name:      "empty signature",
			secret:    secret,
			canonical: canonical,
			signature: "",
			want:      false,
		},
		{
			name:      "prefixed signature",
			secret:    secret,
			canonical: canonical,
			signature: "sha3=" + sig,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := Verify(tt.secret, tt.canonical, tt.signature)
			require.NoError(t, err)
			assert.Equal(t, tt.want, valid)
		})
	}

	t.Run("error - empty secret", func(t *testing.T) {
		valid, err := Verify(Secret{}, canonical, sig)
		require.ErrorIs(t, err, ErrEmptySecret)
		assert.False(t, valid)
	})
}
