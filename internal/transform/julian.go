package transform

import "math"

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00:00).
const j2000 = 2451545.0

// daysPerCentury is the length of a Julian century in days.
const daysPerCentury = 36525.0

// secondsPerDay is the length of a solar day in seconds.
const secondsPerDay = 86400.0

// Epoch is a calendar instant. Fields are not range checked; callers supply
// UTC-consistent values.
type Epoch struct {
	Year, Month, Day     float64
	Hour, Minute, Second float64
}

// JulianDate is a count of days since the Julian epoch (noon, January 1, 4713 BC).
type JulianDate float64

// CenturiesSinceJ2000 returns the number of Julian centuries elapsed since J2000.0.
func (jd JulianDate) CenturiesSinceJ2000() float64 {
	return (float64(jd) - j2000) / daysPerCentury
}

// EpochToJulianDate converts a calendar epoch to a Julian Date.
//
// The day number uses the Fliegel–Van Flandern formula with every division
// truncated toward zero. Julian Dates start at noon, so the day number is moved
// back half a day to midnight before the fraction of the day is added.
//
// Out-of-range fields (month 13, negative hours) are not rejected; they produce
// a numerically defined date.
func EpochToJulianDate(e Epoch) JulianDate {
	a := math.Trunc((e.Month - 14) / 12)

	jdn := e.Day - 32075 +
		math.Trunc(1461*(e.Year+4800+a)/4) +
		math.Trunc(367*(e.Month-2-a*12)/12) -
		math.Trunc(3*math.Trunc((e.Year+4900+a)/100)/4)

	midnight := math.Trunc(jdn) - 0.5
	frac := (e.Second + 60*(e.Minute+60*e.Hour)) / secondsPerDay

	return JulianDate(midnight + frac)
}
