package api

import "encoding/json"

// DiagramType selects the diagram family the backend generates.
// Passing any other value is a caller contract violation, not a wire error;
// the backend rejects it with a validation response.
type DiagramType string

const (
	DiagramFlow     DiagramType = "flow"
	DiagramSequence DiagramType = "sequence"
	DiagramState    DiagramType = "state"
	// DiagramCMICReport is the product-specific settlement report kind.
	DiagramCMICReport DiagramType = "cmic_report"
)

// DiagramRequest asks the backend to generate one diagram from free text.
type DiagramRequest struct {
	DiagramType DiagramType `json:"diagram_type"`
	Text        string      `json:"text"`
	Scene       string      `json:"scene,omitempty"`
}

// DiagramResponse carries the structured spec and the Mermaid source the
// backend produced. Spec is backend-owned and deliberately left opaque.
type DiagramResponse struct {
	Spec    json.RawMessage `json:"spec"`
	Mermaid string          `json:"mermaid"`
}

// IntegrationRequest asks for an integration plan, optionally grounded on a
// swagger document.
type IntegrationRequest struct {
	Text        string `json:"text"`
	SwaggerText string `json:"swagger_text,omitempty"`
}

// IntegrationResponse is the generated integration plan.
type IntegrationResponse struct {
	Markdown string          `json:"markdown"`
	Spec     json.RawMessage `json:"spec,omitempty"`
}

// SettlementMetricsRequest submits caller-supplied tabular settlement data.
// Rows are passed through untouched; all semantic validation is the
// backend's responsibility.
type SettlementMetricsRequest struct {
	Month string           `json:"month"`
	Rows  []map[string]any `json:"rows"`
}

// SettlementMetricsResponse returns the computed metrics keyed by name.
type SettlementMetricsResponse struct {
	Month   string             `json:"month"`
	Metrics map[string]float64 `json:"metrics"`
}

// TaskSubmitResponse is the opaque handle of an accepted async task.
type TaskSubmitResponse struct {
	TaskID string `json:"task_id"`
}

// TaskStatusResponse is a poll of an async task. State is an opaque string
// owned by the backend, not a closed enum this client enforces.
type TaskStatusResponse struct {
	TaskID string         `json:"task_id"`
	State  string         `json:"state"`
	Result map[string]any `json:"result,omitempty"`
}

// Artifact is a persisted record of one generation result, backend-owned and
// read-only from this client's perspective.
type Artifact struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Request   map[string]any  `json:"request"`
	Spec      json.RawMessage `json:"spec,omitempty"`
	Mermaid   string          `json:"mermaid,omitempty"`
	Markdown  string          `json:"markdown,omitempty"`
	ObjectKey string          `json:"object_key,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// LLMPingResponse is the health descriptor of the configured LLM provider.
type LLMPingResponse struct {
	OK        bool   `json:"ok"`
	Provider  string `json:"provider"`
	Mode      string `json:"mode"`
	Model     string `json:"model,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Text      string `json:"text,omitempty"`
	Error     string `json:"error,omitempty"`
}

// LLMConfig describes the backend's active LLM provider configuration.
// Secrets are never returned.
type LLMConfig struct {
	Mode     string `json:"mode"` // mock | openai_compat | ollama
	Model    string `json:"model,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
	APIStyle string `json:"api_style,omitempty"`
}

// SetLLMConfigRequest switches the backend's LLM provider at runtime.
type SetLLMConfigRequest struct {
	Mode    string `json:"mode"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

// DBPingResponse is the health descriptor of the backend database.
type DBPingResponse struct {
	OK        bool   `json:"ok"`
	Dialect   string `json:"dialect"`
	Driver    string `json:"driver,omitempty"`
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	Database  string `json:"database,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}
