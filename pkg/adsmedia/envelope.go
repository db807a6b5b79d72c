package adsmedia

import (
	"encoding/json"
	"fmt"
)

// envelope is the uniform response wrapper used by every ADSMedia endpoint:
// {"success": true, "data": {...}} or {"success": false, "error": {"message": "..."}}.
// Success is a pointer so a response missing the key entirely is detectable
// and reported as a protocol failure instead of implicit success or failure.
// Data stays raw so the codec is lossless; each call decodes it into its own
// result type and applies its own defaults.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   errorField      `json:"error"`
}

// errorField tolerates both error shapes the API has been observed to return:
// an object {"message": "..."} and a bare string.
type errorField struct {
	Message string
}

func (f *errorField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Message = s
		return nil
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	f.Message = obj.Message
	return nil
}

// decodeEnvelope parses a raw response body into an envelope. It never
// panics on malformed input; anything that isn't a recognizable envelope
// is reported as ErrProtocol.
func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: unparseable response body: %v", ErrProtocol, err)
	}
	if env.Success == nil {
		return nil, fmt.Errorf("%w: response missing success flag", ErrProtocol)
	}
	return &env, nil
}

// result interprets the envelope as the outcome of a call. A success envelope
// yields its data payload; a failure envelope yields an APIError carrying the
// service message verbatim.
func (e *envelope) result() (json.RawMessage, error) {
	if !*e.Success {
		msg := e.Error.Message
		if msg == "" {
			msg = "API error"
		}
		return nil, &APIError{Message: msg}
	}
	return e.Data, nil
}
