package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file_path required")
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
}

func TestFileExporter_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = "file"
	cfg.FilePath = path

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "POST /api/diagram/generate")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))

	f, err := os.Open(path) //nolint:gosec // test temp dir
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan(), "expected at least one exported span")

	var record SpanRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
	require.Equal(t, "POST /api/diagram/generate", record.Name)
	require.NotEmpty(t, record.TraceID)
	require.NotEmpty(t, record.SpanID)
}
