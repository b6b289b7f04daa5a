package mermaid

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// errorPlaceholderMarker appears in the SVG the renderer substitutes for
// broken source when it decides to "succeed" anyway.
const errorPlaceholderMarker = "Syntax error in text"

// CLIEngine renders diagrams by shelling out to the mermaid CLI (mmdc).
type CLIEngine struct {
	binary string
}

// NewCLIEngine creates an engine using the given mmdc binary.
// An empty binary resolves "mmdc" from PATH.
func NewCLIEngine(binary string) *CLIEngine {
	if binary == "" {
		binary = "mmdc"
	}
	return &CLIEngine{binary: binary}
}

// Init verifies the renderer binary is reachable.
func (e *CLIEngine) Init() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("mermaid CLI %q not found: %w", e.binary, err)
	}
	return nil
}

// Render pipes source through mmdc and returns the produced SVG.
func (e *CLIEngine) Render(ctx context.Context, id, source string) (string, error) {
	dir, err := os.MkdirTemp("", "pdc-render-*")
	if err != nil {
		return "", fmt.Errorf("render scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	out := filepath.Join(dir, id+".svg")

	cmd := exec.CommandContext(ctx, e.binary,
		"--input", "-",
		"--output", out,
		"--outputFormat", "svg",
		"--svgId", id,
	)
	cmd.Stdin = strings.NewReader(source)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", &RenderError{Reason: strings.TrimSpace(stderr.String()), err: err}
		}
		return "", &RenderError{Reason: err.Error(), err: err}
	}

	svg, err := os.ReadFile(out) //nolint:gosec // G304: path is built from our scratch dir
	if err != nil {
		return "", fmt.Errorf("read rendered svg: %w", err)
	}

	// The CLI exits zero for source it merely decorated with an error
	// graphic. Treat that as failure, not output.
	if bytes.Contains(svg, []byte(errorPlaceholderMarker)) {
		return "", renderErr("renderer produced an error placeholder")
	}
	return string(svg), nil
}
