// Package transform converts ECI (Earth-Centered Inertial) positions to ECEF
// (Earth-Centered Earth-Fixed) positions at a calendar epoch.
//
// Method: calendar epoch to Julian Date, Julian Date to GMST, then a single
// rotation about the Z axis by -GMST. Polar motion, precession, and nutation
// are ignored, as is the UTC to UT1 correction: the epoch is used as given.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3.
package transform

import "math"

// Vector3 is a position in kilometers.
type Vector3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Conversion records every intermediate value of one ECI to ECEF conversion.
type Conversion struct {
	Epoch      Epoch
	JulianDate JulianDate
	GMST       float64 // radians, [0, 2π)
	ECI        Vector3 // km
	ECEF       Vector3 // km
}

// Convert runs the full pipeline for a single epoch and ECI position.
func Convert(e Epoch, eci Vector3) Conversion {
	jd := EpochToJulianDate(e)
	gmst := JulianDateToGMST(jd)
	return Conversion{
		Epoch:      e,
		JulianDate: jd,
		GMST:       gmst,
		ECI:        eci,
		ECEF:       RotateECIToECEF(eci, gmst),
	}
}

// ECIToECEF transforms an ECI position (km) to ECEF (km) at the given epoch.
func ECIToECEF(eci Vector3, e Epoch) Vector3 {
	return RotateECIToECEF(eci, GMST(e))
}

// RotateECIToECEF applies a passive rotation about the Z axis by -theta.
// The Earth-fixed frame turns with the Earth, so an inertial vector appears
// rotated backwards by the sidereal angle. Z passes through unchanged.
func RotateECIToECEF(eci Vector3, theta float64) Vector3 {
	cosT := math.Cos(-theta)
	sinT := math.Sin(-theta)

	return Vector3{
		X: eci.X*cosT - eci.Y*sinT,
		Y: eci.X*sinT + eci.Y*cosT,
		Z: eci.Z,
	}
}
