package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/star/eci2ecef/internal/config"
	"github.com/star/eci2ecef/internal/metrics"
	"github.com/star/eci2ecef/internal/transform"
)

// UsageLine is printed when the positional argument count is wrong.
const UsageLine = "Usage: eci2ecef year month day hour minute second eci_x_km eci_y_km eci_z_km"

// argNames lists the positional arguments in order.
var argNames = [...]string{
	"year", "month", "day", "hour", "minute", "second",
	"eci_x_km", "eci_y_km", "eci_z_km",
}

// RootOptions holds the command-line flags. Only flags the user set override
// the file and environment configuration.
type RootOptions struct {
	ConfigFile  string
	Format      string
	Precision   int
	Geodetic    bool
	MetricsFile string
	LogLevel    string
}

// NewRootCommand creates the eci2ecef command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "eci2ecef [flags] year month day hour minute second eci_x_km eci_y_km eci_z_km",
		Short: "Convert an ECI position to ECEF at a calendar epoch",
		Long: "Converts a position in the Earth-Centered Inertial frame (km) to the\n" +
			"Earth-Centered Earth-Fixed frame by rotating it about the Z axis by the\n" +
			"Greenwich Mean Sidereal Time of the given epoch.\n\n" +
			"Flags must precede the positional arguments.",
		Args:          exactPositionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	flags := cmd.Flags()
	// Stop flag parsing at the first positional so "-2500.25" is a number.
	flags.SetInterspersed(false)
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.Format, "format", defaults.Output.Format, "output format (text|json)")
	flags.IntVar(&opts.Precision, "precision", defaults.Output.Precision, "decimal places in text output")
	flags.BoolVar(&opts.Geodetic, "geodetic", defaults.Output.Geodetic, "also print geodetic latitude, longitude, altitude")
	flags.StringVar(&opts.MetricsFile, "metrics-file", defaults.Metrics.File, "write Prometheus textfile metrics to this path")
	flags.StringVar(&opts.LogLevel, "log-level", defaults.Log.Level, "log level (debug|info|warn|error)")

	return cmd
}

func exactPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) != len(argNames) {
		return NewExitError(ExitCommandError, UsageLine)
	}
	return nil
}

// flagOverrides returns the config keys of every flag set on the command line.
func flagOverrides(cmd *cobra.Command, opts *RootOptions) map[string]any {
	overrides := make(map[string]any)
	flags := cmd.Flags()

	if flags.Changed("format") {
		overrides["output.format"] = opts.Format
	}
	if flags.Changed("precision") {
		overrides["output.precision"] = opts.Precision
	}
	if flags.Changed("geodetic") {
		overrides["output.geodetic"] = opts.Geodetic
	}
	if flags.Changed("metrics-file") {
		overrides["metrics.file"] = opts.MetricsFile
	}
	if flags.Changed("log-level") {
		overrides["log.level"] = opts.LogLevel
	}
	return overrides
}

// parseArgs turns the nine positional arguments into an epoch and ECI position.
func parseArgs(args []string) (transform.Epoch, transform.Vector3, error) {
	var v [len(argNames)]float64
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return transform.Epoch{}, transform.Vector3{},
				WrapExitError(ExitCommandError, fmt.Sprintf("invalid %s %q", argNames[i], arg), err)
		}
		v[i] = f
	}

	epoch := transform.Epoch{
		Year: v[0], Month: v[1], Day: v[2],
		Hour: v[3], Minute: v[4], Second: v[5],
	}
	eci := transform.Vector3{X: v[6], Y: v[7], Z: v[8]}
	return epoch, eci, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func runConvert(cmd *cobra.Command, opts *RootOptions, args []string) error {
	loader := config.NewLoader(
		config.WithConfigFile(opts.ConfigFile),
		config.WithOverrides(flagOverrides(cmd, opts)),
	)
	cfg, err := loader.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	// Validate already accepted the level.
	level, _ := cfg.SlogLevel()
	logger := newLogger(cmd.ErrOrStderr(), level)
	logger.Debug("config loaded", "config", loader.All())

	epoch, eci, err := parseArgs(args)
	if err != nil {
		return err
	}

	start := time.Now()
	conv := transform.Convert(epoch, eci)
	elapsed := time.Since(start)

	logger.Debug("conversion complete",
		"julian_date", float64(conv.JulianDate),
		"gmst_rad", conv.GMST,
		"ecef_x_km", conv.ECEF.X,
		"ecef_y_km", conv.ECEF.Y,
		"ecef_z_km", conv.ECEF.Z,
		"elapsed", elapsed,
	)
	if !conv.ECEF.IsFinite() {
		logger.Warn("ECEF result is not finite", "eci", eci, "epoch", epoch)
	}

	metrics.ObserveConversion(conv, elapsed)

	out := &OutputFormatter{
		Format:    cfg.Output.Format,
		Precision: cfg.Output.Precision,
		Geodetic:  cfg.Output.Geodetic,
		Writer:    cmd.OutOrStdout(),
	}
	if err := out.Write(conv); err != nil {
		return WrapExitError(ExitFailure, "writing output", err)
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
			return WrapExitError(ExitFailure, "writing metrics", err)
		}
		logger.Info("metrics written", "path", cfg.Metrics.File)
	}

	return nil
}
