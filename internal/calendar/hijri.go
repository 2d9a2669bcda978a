package calendar

import (
	"fmt"
	"math"
	"time"
)

// Ramadan is the number of the Hijri month of fasting.
const Ramadan = 9

// Epoch constants of the tabular (civil) Islamic calendar.
const (
	hijriEpoch      = 1948084      // Julian day of 1 Muharram 1 AH, astronomical epoch
	hijriCycleDays  = 10631.0      // days in a 30-year cycle
	hijriYearDays   = 10631.0 / 30 // mean year length
	hijriCycleShift = 8.01 / 60    // leap-year pattern alignment
)

var hijriMonthNames = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Ula", "Jumada al-Akhirah", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// HijriDate is a date in the tabular Islamic calendar.
type HijriDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// GregorianToHijri converts the calendar date of t to a Hijri date using the
// arithmetic civil calendar. adjustment shifts the input by whole days, for
// regions whose month start follows local moon sighting.
func GregorianToHijri(t time.Time, adjustment int) HijriDate {
	y, m, d := t.Date()
	t = time.Date(y, m, d+adjustment, 12, 0, 0, 0, time.UTC)

	// Integral Julian day number (noon-based, hence the -1524 instead of -1524.5).
	jd := math.Floor(GregorianToJulian(t) + 0.5)

	z := jd - hijriEpoch
	cycles := math.Floor(z / hijriCycleDays)
	z -= hijriCycleDays * cycles
	j := math.Floor((z - hijriCycleShift) / hijriYearDays)
	year := 30*cycles + j
	z -= math.Floor(j*hijriYearDays + hijriCycleShift)

	month := math.Floor((z + 28.5001) / 29.5)
	if month == 13 {
		month = 12
	}
	day := z - math.Floor(29.5001*month-29)

	return HijriDate{Year: int(year), Month: int(month), Day: int(day)}
}

// IsRamadan reports whether the date falls in the month of Ramadan.
func (h HijriDate) IsRamadan() bool {
	return h.Month == Ramadan
}

// MonthName returns the transliterated month name, or "" for an invalid month.
func (h HijriDate) MonthName() string {
	if h.Month < 1 || h.Month > 12 {
		return ""
	}
	return hijriMonthNames[h.Month-1]
}

// Format returns the date as "DD MonthName YYYY AH".
func (h HijriDate) Format() string {
	name := h.MonthName()
	if name == "" || h.Day < 1 {
		return ""
	}
	return fmt.Sprintf("%d %s %d AH", h.Day, name, h.Year)
}
