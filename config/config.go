// Package config provides configuration loading and management for privlang.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/privlang/privlang/export"
	"github.com/privlang/privlang/loader"
)

// Config represents the complete privlang configuration
type Config struct {
	Taxonomy TaxonomyConfig     `yaml:"taxonomy"`
	Export   ExportConfig       `yaml:"export"`
	Watch    loader.WatchConfig `yaml:"watch"`
}

// TaxonomyConfig configures dataset loading
type TaxonomyConfig struct {
	// Path is the dataset directory or file (default: current directory)
	Path string `yaml:"path"`
	// Include lists glob patterns for dataset file discovery
	Include []string `yaml:"include"`
	// WithDefaults merges the shipped taxonomy with the loaded one
	WithDefaults bool `yaml:"with_defaults"`
}

// ExportConfig configures taxonomy export
type ExportConfig struct {
	// Format is the export format (yaml, json)
	Format string `yaml:"format"`
	// Output is the output file path (empty = stdout)
	Output string `yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Taxonomy: TaxonomyConfig{
			Path:         ".",
			Include:      loader.DefaultPatterns,
			WithDefaults: true,
		},
		Export: ExportConfig{
			Format: "yaml",
		},
		Watch: loader.DefaultWatchConfig(),
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Taxonomy.Path == "" {
		return fmt.Errorf("taxonomy.path is required")
	}
	if len(c.Taxonomy.Include) == 0 {
		return fmt.Errorf("taxonomy.include requires at least one pattern")
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Taxonomy
	if other.Taxonomy.Path != "" {
		c.Taxonomy.Path = other.Taxonomy.Path
	}
	if len(other.Taxonomy.Include) > 0 {
		c.Taxonomy.Include = other.Taxonomy.Include
	}
	c.Taxonomy.WithDefaults = other.Taxonomy.WithDefaults

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Output != "" {
		c.Export.Output = other.Export.Output
	}

	// Watch
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.FileExtensions) > 0 {
		c.Watch.FileExtensions = other.Watch.FileExtensions
	}
	if len(other.Watch.ExcludeDirs) > 0 {
		c.Watch.ExcludeDirs = other.Watch.ExcludeDirs
	}
}
