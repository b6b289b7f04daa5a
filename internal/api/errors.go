package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransportError reports a non-success HTTP status or a network failure.
// The client never retries; recovery is the caller's decision.
type TransportError struct {
	Status  int    // zero when the request never reached the backend
	Message string
	err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.err
}

func networkError(err error) *TransportError {
	return &TransportError{Message: fmt.Sprintf("request failed: %v", err), err: err}
}

// statusError derives the most specific diagnostic available from a
// non-success response, in priority order:
//
//  1. a JSON body's "detail" or "error" string field
//  2. the full JSON body as text
//  3. the raw response body text
//  4. "HTTP <status>"
//
// The ordered fallback surfaces backend diagnostics without forcing one
// fixed error envelope shape on the backend.
func statusError(status int, body []byte) *TransportError {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return &TransportError{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, key := range []string{"detail", "error"} {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
				return &TransportError{Status: status, Message: msg}
			}
		}
		// Valid JSON without a recognized field: the whole body is the
		// best diagnostic we have.
		return &TransportError{Status: status, Message: text}
	}

	return &TransportError{Status: status, Message: text}
}
