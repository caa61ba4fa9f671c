package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eci2ecef.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	require.NotNil(t, l)
	assert.Equal(t, DefaultEnvPrefix, l.envPrefix)
	assert.Empty(t, l.filePath)
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
		WithOverrides(map[string]any{"output.format": "json"}),
	)

	assert.Equal(t, "TEST_", l.envPrefix)
	assert.Equal(t, "/path/to/config.yaml", l.filePath)
	assert.Equal(t, "json", l.overrides["output.format"])
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, `
log:
  level: debug
output:
  format: json
  precision: 6
  geodetic: true
metrics:
  file: /tmp/eci2ecef.prom
`)

	cfg, err := NewLoader(WithConfigFile(path)).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, 6, cfg.Output.Precision)
	assert.True(t, cfg.Output.Geodetic)
	assert.Equal(t, "/tmp/eci2ecef.prom", cfg.Metrics.File)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := NewLoader(WithConfigFile("/nonexistent/eci2ecef.yaml")).Load()
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ECI2ECEF_OUTPUT_PRECISION", "5")
	t.Setenv("ECI2ECEF_OUTPUT_GEODETIC", "true")
	t.Setenv("ECI2ECEF_METRICS_FILE", "/var/lib/node_exporter/eci2ecef.prom")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Output.Precision)
	assert.True(t, cfg.Output.Geodetic)
	assert.Equal(t, "/var/lib/node_exporter/eci2ecef.prom", cfg.Metrics.File)
	assert.Equal(t, FormatText, cfg.Output.Format, "unset keys keep their defaults")
}

func TestLoad_Env_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_OUTPUT_FORMAT", "json")

	cfg, err := NewLoader(WithEnvPrefix("MYAPP_")).Load()
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
}

func TestLoad_Priority(t *testing.T) {
	path := writeConfigFile(t, `
output:
  format: json
  precision: 6
log:
  level: info
`)
	t.Setenv("ECI2ECEF_OUTPUT_PRECISION", "8")
	t.Setenv("ECI2ECEF_LOG_LEVEL", "error")

	cfg, err := NewLoader(
		WithConfigFile(path),
		WithOverrides(map[string]any{"log.level": "debug"}),
	).Load()
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format, "file should override defaults")
	assert.Equal(t, 8, cfg.Output.Precision, "env should override file")
	assert.Equal(t, "debug", cfg.Log.Level, "overrides should win over env")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"unknown format", map[string]string{"ECI2ECEF_OUTPUT_FORMAT": "xml"}, ErrInvalidFormat},
		{"negative precision", map[string]string{"ECI2ECEF_OUTPUT_PRECISION": "-1"}, ErrInvalidPrecision},
		{"precision too large", map[string]string{"ECI2ECEF_OUTPUT_PRECISION": "20"}, ErrInvalidPrecision},
		{"unknown log level", map[string]string{"ECI2ECEF_LOG_LEVEL": "loud"}, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewLoader().Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := Default()
			cfg.Log.Level = tt.in
			got, err := cfg.SlogLevel()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_All(t *testing.T) {
	l := NewLoader(WithOverrides(map[string]any{"output.geodetic": true}))
	_, err := l.Load()
	require.NoError(t, err)

	all := l.All()
	assert.Equal(t, true, all["output.geodetic"])
	assert.Equal(t, "warn", all["log.level"])
}
