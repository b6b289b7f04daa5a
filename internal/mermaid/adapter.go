// Package mermaid wraps an external Mermaid renderer behind a
// validate-then-render adapter.
//
// The underlying renderer happily produces a "syntax error" placeholder
// graphic for broken source and calls that success. The adapter's whole value
// is turning that into a typed *RenderError before any output is handed to
// the caller.
package mermaid

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pdc/internal/log"
)

// Engine renders already-validated Mermaid source to SVG markup.
type Engine interface {
	// Render returns SVG markup for source. id names the produced SVG
	// element.
	Render(ctx context.Context, id, source string) (string, error)
	// Init performs one-time engine setup, e.g. locating the renderer
	// binary. Called exactly once per Adapter before the first render.
	Init() error
}

// Adapter validates diagram source and delegates rendering to an Engine.
// Engine initialization is idempotent and guarded for concurrent first calls.
type Adapter struct {
	engine   Engine
	initOnce sync.Once
	initErr  error
}

// NewAdapter wraps engine. A nil engine selects the bundled CLI engine.
func NewAdapter(engine Engine) *Adapter {
	if engine == nil {
		engine = NewCLIEngine("")
	}
	return &Adapter{engine: engine}
}

// Render validates source and returns its SVG markup. Invalid source fails
// with *RenderError; no markup is ever returned alongside an error.
func (a *Adapter) Render(ctx context.Context, id, source string) (string, error) {
	a.initOnce.Do(func() {
		a.initErr = a.engine.Init()
	})
	if a.initErr != nil {
		return "", &RenderError{Reason: "engine init: " + a.initErr.Error(), err: a.initErr}
	}

	// Validate first so broken source surfaces as a typed error instead of
	// the engine's rendered error graphic.
	if err := Validate(source); err != nil {
		return "", err
	}

	if id == "" {
		id = "pdc-" + uuid.NewString()
	}
	id = sanitizeID(id)

	svg, err := a.engine.Render(ctx, id, source)
	if err != nil {
		if rerr, ok := err.(*RenderError); ok {
			return "", rerr
		}
		return "", &RenderError{Reason: err.Error(), err: err}
	}

	log.Debug(log.CatRender, "rendered diagram", "id", id, "bytes", len(svg))
	return svg, nil
}

// diagramHeaders are the diagram kinds the product generates or accepts as
// paste-in source.
var diagramHeaders = []string{
	"graph",
	"flowchart",
	"sequenceDiagram",
	"stateDiagram-v2",
	"stateDiagram",
	"classDiagram",
	"erDiagram",
	"journey",
	"gantt",
	"pie",
	"mindmap",
	"timeline",
}

// Validate performs the syntactic screen applied before any render: a known
// diagram header, a non-empty body, and balanced brackets. It is not a full
// parser; the engine still has the final word on anything subtler.
func Validate(source string) error {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return renderErr("empty diagram source")
	}

	header := firstMeaningfulLine(trimmed)
	if header == "" {
		return renderErr("no diagram header found")
	}

	token := strings.Fields(header)[0]
	known := false
	for _, h := range diagramHeaders {
		if token == h {
			known = true
			break
		}
	}
	if !known {
		return renderErr("unknown diagram type %q", token)
	}

	if err := checkBrackets(trimmed); err != nil {
		return err
	}
	return nil
}

// firstMeaningfulLine returns the first line that is neither blank nor a
// %% comment or directive.
func firstMeaningfulLine(source string) string {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		return line
	}
	return ""
}

func checkBrackets(source string) error {
	var stack []rune
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	inQuote := false

	for _, r := range source {
		if r == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return renderErr("unbalanced %q", string(r))
			}
			stack = stack[:len(stack)-1]
		}
	}
	if inQuote {
		return renderErr("unterminated quote")
	}
	if len(stack) > 0 {
		return renderErr("unclosed %q", string(stack[len(stack)-1]))
	}
	return nil
}

func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
