// Package config loads origami settings from an optional YAML file with
// ORIGAMI_* environment overrides.
//
// Environment variables map onto keys by stripping the prefix and splitting
// on the first underscore: ORIGAMI_LOG_LEVEL sets log.level and
// ORIGAMI_TOLERANCE_MAX_DISTANCE sets tolerance.max_distance.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/chazu/origami/pkg/geom"
	"github.com/chazu/origami/pkg/logging"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ORIGAMI_"

// Config is the full configuration.
type Config struct {
	Tolerance ToleranceConfig `koanf:"tolerance"`
	Log       LogConfig       `koanf:"log"`
	Export    ExportConfig    `koanf:"export"`
	Eval      EvalConfig      `koanf:"eval"`
}

// ToleranceConfig holds the numeric guards. With Scaled set, both values
// are multiplied by the sheet's bounding extent.
type ToleranceConfig struct {
	MaxDistance float64 `koanf:"max_distance"`
	Epsilon     float64 `koanf:"epsilon"`
	Scaled      bool    `koanf:"scaled"`
}

// LogConfig selects the level and encoding of CLI logs.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ExportConfig controls DXF and SVG output.
type ExportConfig struct {
	Scale     float64 `koanf:"scale"`
	LineStyle string  `koanf:"line_style"`
}

// EvalConfig bounds fold-script evaluation.
type EvalConfig struct {
	TimeoutMS int `koanf:"timeout_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tolerance: ToleranceConfig{
			MaxDistance: geom.DefaultMaxDistance,
			Epsilon:     geom.DefaultEpsilon,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Export: ExportConfig{
			Scale:     100,
			LineStyle: "fill:none;stroke:black;stroke-width:0.5",
		},
		Eval: EvalConfig{
			TimeoutMS: 5000,
		},
	}
}

// Load reads the YAML file at path, if path is non-empty, then applies
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	var content []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		content = b
	}
	cfg, err := Parse(content)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse is Load for YAML content already in memory.
func Parse(content []byte) (*Config, error) {
	k := koanf.New(".")
	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps ORIGAMI_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Tolerance.MaxDistance <= 0 {
		return fmt.Errorf("tolerance.max_distance must be positive, got %g", c.Tolerance.MaxDistance)
	}
	if c.Tolerance.Epsilon <= 0 {
		return fmt.Errorf("tolerance.epsilon must be positive, got %g", c.Tolerance.Epsilon)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive, got %g", c.Export.Scale)
	}
	if c.Eval.TimeoutMS <= 0 {
		return fmt.Errorf("eval.timeout_ms must be positive, got %d", c.Eval.TimeoutMS)
	}
	return nil
}

// GeomTolerance returns the configured guards as a geom.Tolerance.
func (c Config) GeomTolerance() geom.Tolerance {
	return geom.Tolerance{
		MaxDistance: c.Tolerance.MaxDistance,
		Epsilon:     c.Tolerance.Epsilon,
	}
}

// Timeout returns the evaluation timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Eval.TimeoutMS) * time.Millisecond
}
