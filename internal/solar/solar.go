// Package solar computes the sun's declination for a calendar day and turns
// sun angles into hour offsets from solar noon.
//
// Angles are in degrees throughout; conversion to radians happens only inside
// the calendar trig helpers.
package solar

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/salah/internal/calendar"
)

// SunsetAngle is the zenith angle of the sun's upper limb at sunrise and
// sunset, corrected for atmospheric refraction.
const SunsetAngle = 90.83333

// Declination returns the sun's declination in degrees for the given Julian day.
func Declination(julianDay float64) float64 {
	n := julianDay - calendar.J2000
	epsilon := 23.44 - 0.0000004*n
	l := 280.466 + 0.9856474*n
	g := 357.528 + 0.9856003*n
	lambda := l + 1.915*calendar.Dsin(g) + 0.02*calendar.Dsin(2*g)

	x := calendar.Dsin(epsilon) * calendar.Dsin(lambda)
	return calendar.Degrees(math.Atan(x / math.Sqrt(1-x*x)))
}

// TimeForAngle returns the number of hours between solar noon and the moment
// the sun reaches the zenith angle angle on the given date at the given
// latitude. The result is symmetric around noon: add it for evening events,
// subtract it for morning ones.
//
// When the sun never reaches angle that day (polar day or night, or twilight
// that never ends) the result is NaN.
func TimeForAngle(angle float64, date time.Time, latitude float64) float64 {
	delta := Declination(calendar.GregorianToJulian(date))
	s := (calendar.Dcos(angle) - calendar.Dsin(latitude)*calendar.Dsin(delta)) /
		(calendar.Dcos(latitude) * calendar.Dcos(delta))
	return calendar.Degrees(math.Atan(-s/math.Sqrt(1-s*s))+math.Pi/2) / 15
}

// AsrAngle returns the angle to pass to TimeForAngle for the start of Asr: the
// moment an object's shadow equals shadowFactor times its length plus its
// noon shadow. shadowFactor is 1 for the majority schools and 2 for Hanafi.
func AsrAngle(date time.Time, latitude, shadowFactor float64) float64 {
	delta := Declination(calendar.GregorianToJulian(date))
	x := calendar.Dsin(latitude)*calendar.Dsin(delta) + calendar.Dcos(latitude)*calendar.Dcos(delta)
	a := math.Atan(x / math.Sqrt(1-x*x))
	x = shadowFactor + 1/math.Tan(a)
	return 90 - calendar.Degrees(math.Atan(x)+2*math.Atan(1))
}
