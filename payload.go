package svgicons

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedPayload is returned when an attribute payload is not a JSON object
// of scalar values.
var ErrMalformedPayload = errors.New("malformed attribute payload")

// Payload is a serialized attribute map, e.g. `{"fill":"#000","stroke-width":2}`.
// The empty payload means the phase is absent.
type Payload string

// IsZero reports whether the payload is absent.
func (p Payload) IsZero() bool {
	return p == ""
}

// Decode parses the payload into attribute values. Strings are taken as-is;
// numbers and booleans keep their JSON spelling. Absent payloads decode to nil.
func (p Payload) Decode() (map[string]string, error) {
	if p.IsZero() {
		return nil, nil
	}

	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal([]byte(p), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrMalformedPayload, p)
	}

	attrs := make(map[string]string, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		switch {
		case len(v) == 0:
			return nil, fmt.Errorf("%w: empty value for %q", ErrMalformedPayload, k)
		case v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPayload, k, err)
			}
			attrs[k] = s
		case v[0] == '{' || v[0] == '[' || bytes.Equal(v, []byte("null")):
			return nil, fmt.Errorf("%w: %q must be a string, number or boolean", ErrMalformedPayload, k)
		default:
			attrs[k] = string(v)
		}
	}
	return attrs, nil
}

// payloadFrom normalizes a decoded config value (serialized string or inline
// object/table) into a Payload.
func payloadFrom(v any) (Payload, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return Payload(v), nil
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return Payload(b), nil
	default:
		return "", fmt.Errorf("%w: unsupported payload type %T", ErrMalformedPayload, v)
	}
}
