package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/canteen/client/internal/domain/shared"
)

// APIError is a failed backend answer: a non-2xx status, or a 2xx envelope
// with success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 || e.StatusCode < 300 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Unwrap maps the status to a domain sentinel so callers can use errors.Is
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case http.StatusForbidden:
		return shared.ErrForbidden
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return shared.ErrServiceNotReady
	default:
		return shared.ErrRemoteFailed
	}
}

// envelope is the backend's {success, message, data} wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// parseEnvelope checks status and success flag and returns the envelope
func parseEnvelope(resp *Response) (*envelope, error) {
	var env envelope
	decodeErr := json.Unmarshal(resp.Body, &env)
	if !resp.OK() {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding envelope: %w", decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = shared.ErrRemoteFailed.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

// decodeData unmarshals the envelope's data into v
func decodeData(resp *Response, v any) error {
	env, err := parseEnvelope(resp)
	if err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}
