// Package config loads the optional symbol-file configuration, for
// artifact layouts the canonical directory scan does not cover.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MedRedha/redex/internal/symbol"
)

// fileConfig is the on-disk shape. Every field is optional; empty fields
// fall back to artifact-dir discovery.
type fileConfig struct {
	ClassMap     string `yaml:"class_map"`
	PositionMap  string `yaml:"position_map"`
	DebugLineMap string `yaml:"debug_line_map"`
	IODIMetadata string `yaml:"iodi_metadata"`
}

// Load reads a YAML symbol-file config. Relative paths resolve against
// the config file's directory.
func Load(path string) (symbol.Files, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return symbol.Files{}, fmt.Errorf("config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return symbol.Files{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	base := filepath.Dir(path)
	return symbol.Files{
		ClassMap:     resolve(base, cfg.ClassMap),
		PositionMap:  resolve(base, cfg.PositionMap),
		DebugLineMap: resolve(base, cfg.DebugLineMap),
		IODIMetadata: resolve(base, cfg.IODIMetadata),
	}, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
