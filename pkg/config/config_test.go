package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/origami/pkg/geom"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, geom.DefaultTolerance, cfg.GeomTolerance())
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "origami.yaml")
	content := `tolerance:
  epsilon: 0.01
  scaled: true
log:
  level: debug
  format: json
export:
  scale: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Tolerance.Epsilon)
	assert.True(t, cfg.Tolerance.Scaled)
	assert.Equal(t, float64(geom.DefaultMaxDistance), cfg.Tolerance.MaxDistance, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 250.0, cfg.Export.Scale)
	assert.Equal(t, Default().Export.LineStyle, cfg.Export.LineStyle)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ORIGAMI_LOG_LEVEL", "error")
	t.Setenv("ORIGAMI_TOLERANCE_MAX_DISTANCE", "5000")
	t.Setenv("ORIGAMI_EVAL_TIMEOUT_MS", "250")

	cfg, err := Parse([]byte("log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level, "env wins over file")
	assert.Equal(t, 5000.0, cfg.Tolerance.MaxDistance)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout())
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"ORIGAMI_LOG_LEVEL":              "log.level",
		"ORIGAMI_TOLERANCE_MAX_DISTANCE": "tolerance.max_distance",
		"ORIGAMI_EXPORT_LINE_STYLE":      "export.line_style",
		"ORIGAMI_DEBUG":                  "debug",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero epsilon", func(c *Config) { c.Tolerance.Epsilon = 0 }},
		{"negative max distance", func(c *Config) { c.Tolerance.MaxDistance = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"zero scale", func(c *Config) { c.Export.Scale = 0 }},
		{"zero timeout", func(c *Config) { c.Eval.TimeoutMS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("log: [unclosed"))
	assert.Error(t, err)

	_, err = Parse([]byte("export:\n  scale: -2\n"))
	assert.ErrorContains(t, err, "export.scale")
}
