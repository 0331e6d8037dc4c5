package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedEnvelope = errors.New("malformed envelope")

// Envelope is a tagged message carried on a text frame.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

var emptyObject = json.RawMessage("{}")

// Encode serializes {type, payload}. A nil payload is sent as {}.
func Encode(kind Kind, payload any) ([]byte, error) {
	raw := emptyObject
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", kind, err)
		}
		raw = b
	}
	return json.Marshal(Envelope{Type: kind, Payload: raw})
}

// Decode parses a text frame into an envelope.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrMalformedEnvelope)
	}
	if len(env.Payload) == 0 {
		env.Payload = json.RawMessage("null")
	}
	return env, nil
}

// Notice is a human-readable server message. The server sends it either
// as a bare JSON string or as an object with an "error" or "message" field.
type Notice struct {
	Text string
}

func (n *Notice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		n.Text = ""
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &n.Text)
	case '{':
		var obj struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		n.Text = obj.Error
		if n.Text == "" {
			n.Text = obj.Message
		}
		return nil
	default:
		n.Text = string(b)
		return nil
	}
}

func (n Notice) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Text)
}

func (n Notice) String() string { return n.Text }
