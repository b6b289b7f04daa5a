package mermaid

import "fmt"

// RenderError reports diagram source that failed validation or rendering.
// It is raised before any placeholder output could be mistaken for success.
type RenderError struct {
	Reason string
	err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("mermaid render failed: %s", e.Reason)
}

func (e *RenderError) Unwrap() error {
	return e.err
}

func renderErr(format string, args ...any) *RenderError {
	return &RenderError{Reason: fmt.Sprintf(format, args...)}
}
