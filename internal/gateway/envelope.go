package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Envelope is the {status, message, result} shape every backend service
// answers with. Bodies that are not envelopes land in Result as-is.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Decode unmarshals Result into out. A missing or null result leaves out
// untouched.
func (e Envelope) Decode(out any) error {
	if len(e.Result) == 0 || bytes.Equal(e.Result, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(e.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

func parseEnvelope(raw []byte) (Envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Envelope{Status: true}, nil
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return Envelope{Status: true, Message: string(trimmed)}, nil
		}
		return Envelope{Status: true, Result: json.RawMessage(trimmed)}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	_, hasResult := probe["result"]
	_, hasMessage := probe["message"]
	if !hasResult && !hasMessage {
		return Envelope{Status: true, Result: json.RawMessage(trimmed)}, nil
	}

	env := Envelope{Status: true}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if _, hasStatus := probe["status"]; !hasStatus {
		env.Status = true
	}
	return env, nil
}

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway status %d", e.Status)
}

func newAPIError(status int, raw []byte) *APIError {
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	apiErr := &APIError{Status: status, Body: raw}

	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		apiErr.Message = env.Message
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
		return apiErr
	}
	text := strings.TrimSpace(string(raw))
	if text != "" && !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}
	return apiErr
}

// StatusOf reports the HTTP status carried by err, or 0 for transport failures.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ErrorMessage picks the text shown to the user: the server's message,
// then the error itself, then the fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
