package studio

import (
	"pdc/internal/api"
)

// TaskEvent is the payload published on the studio broker while an async
// generation task moves through the backend.
type TaskEvent struct {
	TaskID string
	State  string
	Result map[string]any
	Err    error
}

// submittedMsg reports that an async task was accepted by the backend.
type submittedMsg struct {
	taskID string
}

// diagramMsg carries a synchronous diagram generation result.
type diagramMsg struct {
	resp api.DiagramResponse
	err  error
}

// integrationMsg carries a synchronous integration generation result.
type integrationMsg struct {
	resp api.IntegrationResponse
	err  error
}

// renderedMsg carries markdown already styled for the result viewport.
type renderedMsg struct {
	content string
}
