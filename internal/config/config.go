// Package config holds the driver's constants and its optional ember.yaml file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ember.yaml configuration.
type Config struct {
	// Scope selects how function call scopes are chained: "dynamic" lets a
	// function body see its caller's locals, "global" restricts it to its
	// parameters and top-level bindings. Defaults to "dynamic".
	Scope string `yaml:"scope,omitempty"`

	// MaxDepth bounds evaluation nesting. Defaults to DefaultMaxDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Color controls coloured diagnostics: "auto" (only on a terminal),
	// "always" or "never". Defaults to "auto".
	Color string `yaml:"color,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Scope:    ScopeDynamic,
		MaxDepth: DefaultMaxDepth,
		Color:    ColorAuto,
	}
}

// Parse decodes and validates a configuration document. Missing fields take
// their defaults; unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	var raw Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if raw.Scope != "" {
		cfg.Scope = raw.Scope
	}
	if raw.MaxDepth != 0 {
		cfg.MaxDepth = raw.MaxDepth
	}
	if raw.Color != "" {
		cfg.Color = raw.Color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path. A missing file is not an error when optional is set; the
// defaults are returned instead.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Scope {
	case ScopeDynamic, ScopeGlobal:
	default:
		return fmt.Errorf("scope must be %q or %q, got %q", ScopeDynamic, ScopeGlobal, c.Scope)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}
