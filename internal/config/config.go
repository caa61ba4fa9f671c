// Package config loads eci2ecef settings.
//
// Sources are layered with koanf, later sources overriding earlier ones:
// built-in defaults, an optional YAML file, ECI2ECEF_* environment variables,
// then command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// MaxPrecision bounds output.precision; float64 carries ~15 significant digits.
const MaxPrecision = 12

var (
	ErrInvalidFormat    = errors.New("config: invalid output format")
	ErrInvalidPrecision = errors.New("config: invalid output precision")
	ErrInvalidLogLevel  = errors.New("config: invalid log level")
)

// Config is the full configuration tree.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Output  OutputConfig  `koanf:"output"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format    string `koanf:"format"`
	Precision int    `koanf:"precision"`
	Geodetic  bool   `koanf:"geodetic"`
}

// MetricsConfig controls the Prometheus textfile sink. An empty File disables it.
type MetricsConfig struct {
	File string `koanf:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "warn"},
		Output: OutputConfig{
			Format:    FormatText,
			Precision: 3,
		},
	}
}

// defaultMap mirrors Default as a flat koanf key map.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"log.level":        d.Log.Level,
		"output.format":    d.Output.Format,
		"output.precision": d.Output.Precision,
		"output.geodetic":  d.Output.Geodetic,
		"metrics.file":     d.Metrics.File,
	}
}

// Validate checks every field that has a closed set of values.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w %q: must be one of [%s %s]", ErrInvalidFormat, c.Output.Format, FormatText, FormatJSON)
	}

	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("%w %d: must be between 0 and %d", ErrInvalidPrecision, c.Output.Precision, MaxPrecision)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses Log.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return lvl, nil
}
