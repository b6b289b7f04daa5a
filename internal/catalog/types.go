package catalog

// PipelineKind identifies the rendering pipeline a strategy drives.
type PipelineKind string

const (
	// PipelineMermaidSVGWeb renders LLM-produced Mermaid text to SVG for web embedding.
	PipelineMermaidSVGWeb PipelineKind = "mermaid_svg_web"
	// PipelineDrawioEditable hands LLM-produced draw.io XML to the editor as an editable deliverable.
	PipelineDrawioEditable PipelineKind = "drawio_editable"
	// PipelineSettlementECharts feeds settlement metrics straight to a dashboard, no LLM involved.
	PipelineSettlementECharts PipelineKind = "settlement_echarts"
)

func (k PipelineKind) valid() bool {
	switch k {
	case PipelineMermaidSVGWeb, PipelineDrawioEditable, PipelineSettlementECharts:
		return true
	}
	return false
}

// LLMOutputFormat is the output format the LLM is asked to produce for a strategy.
type LLMOutputFormat string

const (
	FormatMermaid   LLMOutputFormat = "mermaid"
	FormatDrawioXML LLMOutputFormat = "drawio_xml"
	// FormatNone marks strategies whose pipeline never invokes an LLM.
	FormatNone LLMOutputFormat = "none"
)

func (f LLMOutputFormat) valid() bool {
	switch f {
	case FormatMermaid, FormatDrawioXML, FormatNone:
		return true
	}
	return false
}

// GraphType classifies the diagram shape a template requests.
type GraphType string

const (
	GraphFlow         GraphType = "flow"
	GraphArchitecture GraphType = "architecture"
	GraphMetrics      GraphType = "metrics"
	GraphDataflow     GraphType = "dataflow"
	GraphAttribution  GraphType = "attribution"
	GraphSequence     GraphType = "sequence"
	GraphState        GraphType = "state"
)

func (g GraphType) valid() bool {
	switch g {
	case GraphFlow, GraphArchitecture, GraphMetrics, GraphDataflow,
		GraphAttribution, GraphSequence, GraphState:
		return true
	}
	return false
}

// ExportFormat is a producible output format of a strategy's pipeline.
type ExportFormat string

const (
	ExportSVG    ExportFormat = "svg"
	ExportPNG    ExportFormat = "png"
	ExportPDF    ExportFormat = "pdf"
	ExportDrawio ExportFormat = "drawio"
)

func (e ExportFormat) valid() bool {
	switch e {
	case ExportSVG, ExportPNG, ExportPDF, ExportDrawio:
		return true
	}
	return false
}

// Defaults is the template/strategy/output-profile triple a business starts with.
type Defaults struct {
	TemplateID      string `yaml:"templateId"`
	StrategyID      string `yaml:"strategyId"`
	OutputProfileID string `yaml:"outputProfileId"`
}

// Business identifies a product domain and its enabled catalog subsets.
type Business struct {
	BusinessID        string   `yaml:"businessId"`
	Label             string   `yaml:"label"`
	Defaults          Defaults `yaml:"defaults"`
	EnabledTemplates  []string `yaml:"enabledTemplates"`
	EnabledStrategies []string `yaml:"enabledStrategies"`
}

// Strategy is a named combination of LLM output format and rendering pipeline.
type Strategy struct {
	StrategyID      string          `yaml:"strategyId"`
	Label           string          `yaml:"label"`
	PipelineKind    PipelineKind    `yaml:"pipelineKind"`
	LLMOutputFormat LLMOutputFormat `yaml:"llmOutputFormat"`
	Exports         []ExportFormat  `yaml:"exports"`
}

// Template is a reusable diagram request shape scoped to one business.
//
// Constraints is an opaque hint bag interpreted only by the backend and its
// prompt templates; the front end carries it through untouched.
type Template struct {
	TemplateID             string         `yaml:"templateId"`
	BusinessID             string         `yaml:"businessId"`
	Label                  string         `yaml:"label"`
	GraphType              GraphType      `yaml:"graphType"`
	RecommendedStrategyIDs []string       `yaml:"recommendedStrategyIds"`
	PromptTemplateID       *string        `yaml:"promptTemplateId"`
	Constraints            map[string]any `yaml:"constraints,omitempty"`
	ExampleInputs          []string       `yaml:"exampleInputs"`
}

// UsesLLM reports whether this template routes through an LLM at all.
func (t Template) UsesLLM() bool {
	return t.PromptTemplateID != nil
}

// OutputProfile is a target-environment descriptor for rendering.
type OutputProfile struct {
	OutputProfileID string `yaml:"outputProfileId"`
	Label           string `yaml:"label"`
}

// Config is the raw, unvalidated catalog as loaded from YAML.
type Config struct {
	Version        string          `yaml:"version"`
	Businesses     []Business      `yaml:"businesses"`
	Strategies     []Strategy      `yaml:"strategies"`
	Templates      []Template      `yaml:"templates"`
	OutputProfiles []OutputProfile `yaml:"outputProfiles"`
}
