package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pdc/internal/log"
)

//go:embed builtin.yaml
var builtinCatalog []byte

// LoadBytes decodes a YAML catalog and builds a validated Registry from it.
func LoadBytes(data []byte) (*Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(cfg)
}

// Load reads a YAML catalog file and builds a validated Registry from it.
// An empty path loads the built-in catalog shipped with the binary.
func Load(path string) (*Registry, error) {
	if path == "" {
		return LoadBytes(builtinCatalog)
	}
	log.Debug(log.CatCatalog, "loading catalog file", "path", path)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user flags/config
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return LoadBytes(data)
}

// Builtin returns the registry built from the embedded catalog data.
// The embedded data is part of the release and must always validate; a
// failure here is a programming error.
func Builtin() *Registry {
	r, err := LoadBytes(builtinCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return r
}
