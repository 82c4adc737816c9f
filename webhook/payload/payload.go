package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 is returned when the request body is not valid UTF-8 text
	ErrInvalidUTF8 = errors.New("body is not valid UTF-8")

	// ErrLoneSurrogate is returned for a \u escape that does not form a valid UTF-16 pair
	ErrLoneSurrogate = errors.New("lone surrogate in string")

	// ErrDuplicateField is returned when a payload field appears more than once
	ErrDuplicateField = errors.New("duplicate field")

	// ErrFieldCase is returned for a key that only matches a payload field ignoring case
	ErrFieldCase = errors.New("field name case mismatch")
)

// fieldNames lists the payload keys in canonical order
var fieldNames = []string{
	"cache",
	"topic",
	"event_timestamp",
	"publish_timestamp",
	"topic_sequence_number",
	"token_id",
	"text",
}

// Payload is the message Momento Topics posts to a webhook endpoint.
// Field order matches the producer's serialization and must not change:
// the signature is computed over Canonical, which walks the fields in this order.
type Payload struct {
	Cache               string  `json:"cache"`
	Topic               string  `json:"topic"`
	EventTimestamp      int64   `json:"event_timestamp"`
	PublishTimestamp    int64   `json:"publish_timestamp"`
	TopicSequenceNumber int64   `json:"topic_sequence_number"`
	TokenID             *string `json:"token_id"`
	Text                string  `json:"text"`
}

// UnmarshalJSON decodes a payload and rejects documents missing a required field.
// token_id is the only optional field and may be absent or null.
// Keys match exactly, each field may appear once and strings must be valid UTF-16
// once unescaped; unknown keys are ignored.
func (p *Payload) UnmarshalJSON(data []byte) error {
	if err := checkSurrogates(data); err != nil {
		return err
	}
	if err := checkFields(data); err != nil {
		return err
	}

	var aux struct {
		Cache               *string `json:"cache"`
		Topic               *string `json:"topic"`
		EventTimestamp      *int64  `json:"event_timestamp"`
		PublishTimestamp    *int64  `json:"publish_timestamp"`
		TopicSequenceNumber *int64  `json:"topic_sequence_number"`
		TokenID             *string `json:"token_id"`
		Text                *string `json:"text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("unmarshaling payload: %w", err)
	}

	switch {
	case aux.Cache == nil:
		return missingField("cache")
	case aux.Topic == nil:
		return missingField("topic")
	case aux.EventTimestamp == nil:
		return missingField("event_timestamp")
	case aux.PublishTimestamp == nil:
		return missingField("publish_timestamp")
	case aux.TopicSequenceNumber == nil:
		return missingField("topic_sequence_number")
	case aux.Text == nil:
		return missingField("text")
	}

	*p = Payload{
		Cache:               *aux.Cache,
		Topic:               *aux.Topic,
		EventTimestamp:      *aux.EventTimestamp,
		PublishTimestamp:    *aux.PublishTimestamp,
		TopicSequenceNumber: *aux.TopicSequenceNumber,
		TokenID:             aux.TokenID,
		Text:                *aux.Text,
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing field %s", name)
}

// checkFields walks the top-level object keys. encoding/json matches keys ignoring
// case and keeps the last duplicate, neither of which the producer's format allows.
// Anything that is not an object is left for json.Unmarshal to reject.
func checkFields(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("unmarshaling payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	seen := make(map[string]bool, len(fieldNames))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("unmarshaling payload: %w", err)
		}
		key, _ := tok.(string)

		for _, name := range fieldNames {
			if !strings.EqualFold(key, name) {
				continue
			}
			if key != name {
				return fmt.Errorf("%w: %q", ErrFieldCase, key)
			}
			if seen[name] {
				return fmt.Errorf("%w %s", ErrDuplicateField, name)
			}
			seen[name] = true
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("unmarshaling payload: %w", err)
		}
	}
	return nil
}

// checkSurrogates rejects \uXXXX escapes in strings that encode half of a surrogate
// pair without its other half; encoding/json would silently turn them into U+FFFD.
func checkSurrogates(data []byte) error {
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			continue
		}
		switch c {
		case '"':
			inString = false
		case '\\':
			if i+1 >= len(data) {
				return nil
			}
			if data[i+1] != 'u' {
				i++
				continue
			}
			r, ok := hexRune(data, i+2)
			if !ok {
				// malformed escape, json.Unmarshal reports it
				i++
				continue
			}
			i += 5
			switch {
			case utf16.IsSurrogate(r) && r < 0xdc00:
				if i+6 < len(data) && data[i+1] == '\\' && data[i+2] == 'u' {
					if low, ok := hexRune(data, i+3); ok && low >= 0xdc00 && low <= 0xdfff {
						i += 6
						continue
					}
				}
				return ErrLoneSurrogate
			case utf16.IsSurrogate(r):
				return ErrLoneSurrogate
			}
		}
	}
	return nil
}

// hexRune decodes the four hex digits at data[at:at+4]
func hexRune(data []byte, at int) (rune, bool) {
	if at+4 > len(data) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(data[at:at+4]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// Parse decodes a raw request body into a Payload
func Parse(data []byte) (Payload, error) {
	if !utf8.Valid(data) {
		return Payload{}, ErrInvalidUTF8
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// Canonical returns the byte encoding the producer signs: compact JSON with the
// fields in declaration order, integers in decimal and a null token_id when absent.
// Strings are escaped exactly as the producer's serializer does it, which is why
// this does not go through encoding/json (it escapes U+2028 and U+2029 unconditionally).
func (p Payload) Canonical() []byte {
	b := make([]byte, 0, 160+len(p.Cache)+len(p.Topic)+len(p.Text))

	b = append(b, `{"cache":`...)
	b = appendString(b, p.Cache)
	b = append(b, `,"topic":`...)
	b = appendString(b, p.Topic)
	b = append(b, `,"event_timestamp":`...)
	b = strconv.AppendInt(b, p.EventTimestamp, 10)
	b = append(b, `,"publish_timestamp":`...)
	b = strconv.AppendInt(b, p.PublishTimestamp, 10)
	b = append(b, `,"topic_sequence_number":`...)
	b = strconv.AppendInt(b, p.TopicSequenceNumber, 10)
	b = append(b, `,"token_id":`...)
	if p.TokenID == nil {
		b = append(b, "null"...)
	} else {
		b = appendString(b, *p.TokenID)
	}
	b = append(b, `,"text":`...)
	b = appendString(b, p.Text)
	b = append(b, '}')

	return b
}

const hexDigits = "0123456789abcdef"

func appendString(b []byte, s string) []byte {
	b = append(b, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b = append(b, s[start:i]...)
		switch c {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			b = append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	b = append(b, s[start:]...)
	return append(b, '"')
}
