package transform

import "math"

// Reference ellipsoid.
const (
	EquatorialRadiusKm = 6378.137
	Eccentricity       = 0.081819221456
	eccentricitySq     = Eccentricity * Eccentricity
)

// GeodeticPoint holds a geodetic position (latitude/longitude in degrees, altitude in km).
type GeodeticPoint struct {
	LatDeg, LonDeg, AltKm float64
}

// ECEFToGeodetic converts an ECEF position (km) to geodetic coordinates
// using the iterative Bowring method. Converges in 2-3 iterations for Earth orbits.
func ECEFToGeodetic(v Vector3) GeodeticPoint {
	lon := math.Atan2(v.Y, v.X)

	p := math.Sqrt(v.X*v.X + v.Y*v.Y)

	// Initial estimate using Bowring's method.
	lat := math.Atan2(v.Z, p*(1-eccentricitySq))

	for i := 0; i < 5; i++ {
		sinLat := math.Sin(lat)
		n := primeVerticalRadius(sinLat)
		lat = math.Atan2(v.Z+eccentricitySq*n*sinLat, p)
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := primeVerticalRadius(sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = p/cosLat - n
	} else {
		alt = math.Abs(v.Z)/math.Abs(sinLat) - n*(1-eccentricitySq)
	}

	return GeodeticPoint{
		LatDeg: lat * 180.0 / math.Pi,
		LonDeg: lon * 180.0 / math.Pi,
		AltKm:  alt,
	}
}

// primeVerticalRadius is the radius of curvature in the prime vertical, in km.
func primeVerticalRadius(sinLat float64) float64 {
	return EquatorialRadiusKm / math.Sqrt(1-eccentricitySq*sinLat*sinLat)
}
