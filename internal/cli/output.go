package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/star/eci2ecef/internal/config"
	"github.com/star/eci2ecef/internal/transform"
)

// Exit codes.
const (
	ExitSuccess      = 0 // Successful conversion
	ExitFailure      = 1 // Runtime failure after the conversion (metrics write)
	ExitCommandError = 2 // Wrong argument count, unparseable number, bad config
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter prints conversion results.
type OutputFormatter struct {
	Format    string // config.FormatText or config.FormatJSON
	Precision int    // decimals for text output
	Geodetic  bool
	Writer    io.Writer
}

// ecefJSON is the JSON shape of an ECEF position.
type ecefJSON struct {
	X float64 `json:"x_km"`
	Y float64 `json:"y_km"`
	Z float64 `json:"z_km"`
}

type geodeticJSON struct {
	Lat float64 `json:"lat_deg"`
	Lon float64 `json:"lon_deg"`
	Alt float64 `json:"alt_km"`
}

type resultJSON struct {
	JulianDate float64       `json:"julian_date"`
	GMST       float64       `json:"gmst_rad"`
	ECEF       ecefJSON      `json:"ecef"`
	Geodetic   *geodeticJSON `json:"geodetic,omitempty"`
}

// Write prints conv in the configured format.
func (f *OutputFormatter) Write(conv transform.Conversion) error {
	var geo *transform.GeodeticPoint
	if f.Geodetic {
		g := transform.ECEFToGeodetic(conv.ECEF)
		geo = &g
	}

	if f.Format == config.FormatJSON {
		return f.writeJSON(conv, geo)
	}
	return f.writeText(conv, geo)
}

// writeText prints one value per line: x, y, z, then lat, lon, alt when
// geodetic output is on.
func (f *OutputFormatter) writeText(conv transform.Conversion, geo *transform.GeodeticPoint) error {
	values := []float64{conv.ECEF.X, conv.ECEF.Y, conv.ECEF.Z}
	if geo != nil {
		values = append(values, geo.LatDeg, geo.LonDeg, geo.AltKm)
	}

	for _, v := range values {
		if _, err := fmt.Fprintf(f.Writer, "%.*f\n", f.Precision, v); err != nil {
			return err
		}
	}
	return nil
}

func (f *OutputFormatter) writeJSON(conv transform.Conversion, geo *transform.GeodeticPoint) error {
	out := resultJSON{
		JulianDate: float64(conv.JulianDate),
		GMST:       conv.GMST,
		ECEF:       ecefJSON{X: conv.ECEF.X, Y: conv.ECEF.Y, Z: conv.ECEF.Z},
	}
	if geo != nil {
		out.Geodetic = &geodeticJSON{Lat: geo.LatDeg, Lon: geo.LonDeg, Alt: geo.AltKm}
	}

	// encoding/json rejects NaN and Inf, and the core lets them through.
	if !conv.ECEF.IsFinite() {
		return fmt.Errorf("cannot encode non-finite ECEF position %+v as JSON", conv.ECEF)
	}
	return json.NewEncoder(f.Writer).Encode(out)
}
