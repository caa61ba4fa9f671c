package transform

import "math"

// OmegaEarth is Earth's rotation rate in rad/s.
const OmegaEarth = 7.292115e-5

// JulianDateToGMST calculates Greenwich Mean Sidereal Time in radians for a
// Julian Date. The result is always in [0, 2π).
//
// Uses the IAU-82 polynomial as described in Vallado "Fundamentals of Astrodynamics":
//
//	θ_GMST = 67310.54841 + (876600h + 8640184.812866)*T + 0.093104*T² - 6.2e-6*T³
//
// where T is Julian centuries from J2000.0 and the result is in seconds of time.
// Seconds are reduced modulo one day before conversion to radians so the
// multiplication by OmegaEarth stays small.
func JulianDateToGMST(jd JulianDate) float64 {
	t := jd.CenturiesSinceJ2000()

	// 876600h = 876600 * 3600 = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(876600*3600+8640184.812866)*t +
		0.093104*t*t -
		6.2e-6*t*t*t

	// Normalize to [0, 86400) seconds.
	gmstSec = math.Mod(gmstSec, secondsPerDay)
	if gmstSec < 0 {
		gmstSec += secondsPerDay
	}

	return math.Mod(gmstSec*OmegaEarth+2*math.Pi, 2*math.Pi)
}

// GMST calculates the sidereal angle in radians for a calendar epoch.
func GMST(e Epoch) float64 {
	return JulianDateToGMST(EpochToJulianDate(e))
}
