// Package metrics records conversion metrics and writes them in the
// Prometheus text format for the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/star/eci2ecef/internal/transform"
)

// registry is private so the textfile only carries eci2ecef series, not the
// Go runtime collectors of the default registry.
var registry = prometheus.NewRegistry()

var (
	conversionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eci2ecef_conversions_total",
			Help: "Total number of ECI to ECEF conversions.",
		},
	)

	conversionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eci2ecef_conversion_duration_seconds",
			Help:    "Wall time of one ECI to ECEF conversion in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 10, 7),
		},
	)

	gmstRadians = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eci2ecef_gmst_radians",
			Help: "GMST angle of the last conversion in radians.",
		},
	)

	julianDate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eci2ecef_julian_date",
			Help: "Julian Date of the last conversion epoch.",
		},
	)
)

func init() {
	registry.MustRegister(conversionsTotal)
	registry.MustRegister(conversionDurationSeconds)
	registry.MustRegister(gmstRadians)
	registry.MustRegister(julianDate)
}

// Registry returns the gatherer holding every eci2ecef series.
func Registry() prometheus.Gatherer {
	return registry
}

// ObserveConversion records one finished conversion.
func ObserveConversion(conv transform.Conversion, elapsed time.Duration) {
	conversionsTotal.Inc()
	conversionDurationSeconds.Observe(elapsed.Seconds())
	gmstRadians.Set(conv.GMST)
	julianDate.Set(float64(conv.JulianDate))
}

// WriteTextfile writes the registry to path. The file is written to a
// temporary name and renamed into place, so a collector never reads half a file.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
