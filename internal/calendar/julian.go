// Package calendar converts Gregorian dates into the day counts used by the
// solar formulas (Julian day numbers) and into Hijri dates.
//
// Every function here is a closed-form computation on the calendar date only;
// time of day and time zone of the input are ignored.
package calendar

import (
	"math"
	"time"
)

// J2000 is the Julian day number of 2000-01-01 00:00, the epoch the solar
// formulas count days from.
const J2000 = 2451544.5

// GregorianToJulian returns the astronomical Julian day number for the
// Gregorian calendar date of t at 00:00.
func GregorianToJulian(t time.Time) float64 {
	y, m, d := t.Date()
	year := float64(y)
	month := float64(m)
	if m <= time.February {
		year--
		month += 12
	}

	a := math.Floor(year / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(year+4716)) + math.Floor(30.6001*(month+1)) + float64(d) + b - 1524.5
}

// EquationOfTime returns the difference in minutes between apparent and mean
// solar time for the given Julian day. A positive value means solar noon falls
// after 12:00 mean time.
func EquationOfTime(julianDay float64) float64 {
	n := julianDay - J2000
	g := 357.528 + 0.9856003*n
	c := 1.9148*Dsin(g) + 0.02*Dsin(2*g) + 0.0003*Dsin(3*g)
	lambda := 280.47 + 0.9856003*n + c
	r := -2.468*Dsin(2*lambda) + 0.053*Dsin(4*lambda) + 0.0014*Dsin(6*lambda)
	return (c + r) * 4
}

// Dsin is the sine of an angle given in degrees.
func Dsin(deg float64) float64 { return math.Sin(Radians(deg)) }

// Dcos is the cosine of an angle given in degrees.
func Dcos(deg float64) float64 { return math.Cos(Radians(deg)) }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * (math.Pi / 180) }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * (180 / math.Pi) }
