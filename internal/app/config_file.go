package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input     string `yaml:"input" json:"input"`
	Grammar   string `yaml:"grammar" json:"grammar"`
	Output    string `yaml:"output" json:"output"`
	OutputPDF string `yaml:"outputPDF" json:"outputPDF"`
	Format    string `yaml:"format" json:"format"`

	Max struct {
		Trees int `yaml:"trees" json:"trees"`
	} `yaml:"max" json:"max"`

	Verbose bool `yaml:"verbose" json:"verbose"`

	Server struct {
		Enable bool   `yaml:"enable" json:"enable"`
		Addr   string `yaml:"addr" json:"addr"`
	} `yaml:"server" json:"server"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are still at their zero value. Flags and env have already been applied, so
// they win; defaults are applied afterwards by ApplyDefaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if cfg.GrammarPath == "" && fc.Grammar != "" {
		cfg.GrammarPath = fc.Grammar
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.OutputPDFPath == "" && fc.OutputPDF != "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}
	if cfg.Format == "" && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if cfg.MaxTrees == 0 && fc.Max.Trees > 0 {
		cfg.MaxTrees = fc.Max.Trees
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if !cfg.Serve && fc.Server.Enable {
		cfg.Serve = true
	}
	if cfg.Addr == "" && fc.Server.Addr != "" {
		cfg.Addr = fc.Server.Addr
	}
}

// DefaultAddr is the listen address used by serve mode when none is set.
const DefaultAddr = ":8090"

// DefaultServeMaxTrees caps parses per request in serve mode when no cap is
// configured.
const DefaultServeMaxTrees = 100

// ValidateConfig performs minimal schema validation.
func ValidateConfig(cfg Config) error {
	switch cfg.Format {
	case "", FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("config: unknown format %q (want text, yaml or json)", cfg.Format)
	}
	if cfg.MaxTrees < 0 {
		return errors.New("config: max.trees must not be negative")
	}
	if cfg.Serve && cfg.Addr == "" {
		return errors.New("config: serve mode needs an address")
	}
	return nil
}
