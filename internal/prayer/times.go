// Package prayer computes the daily Islamic prayer schedule for a location
// and date from solar geometry, and answers "which prayer is it now" style
// questions against a computed schedule.
package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/salah/internal/calendar"
	"github.com/smokyabdulrahman/salah/internal/solar"
)

// Location is a point on Earth in decimal degrees; north and east are positive.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks that the coordinates are finite and in range.
func (l Location) Validate() error {
	if !isFinite(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidLocation, l.Latitude)
	}
	if !isFinite(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidLocation, l.Longitude)
	}
	return nil
}

// PrayerTimes is the computed schedule for one day. All instants are in the
// zone of the date passed to Compute. The night markers and, in far western
// or summer-shifted setups, Ishaa can fall on the following calendar day.
//
// The night runs from Maghreb to the same day's Fajr moved forward 24 hours,
// not to FajrTomorrow. The thirds and Midnight therefore differ from the
// Maghreb to FajrTomorrow split by the day-to-day drift of Fajr, a few
// seconds at most latitudes.
type PrayerTimes struct {
	Date     time.Time          `json:"date" yaml:"date"`
	Location Location           `json:"location" yaml:"location"`
	Config   Config             `json:"config" yaml:"config"`
	Hijri    calendar.HijriDate `json:"hijri" yaml:"hijri"`

	Fajr    time.Time `json:"fajr" yaml:"fajr"`
	Sherook time.Time `json:"sherook" yaml:"sherook"`
	Dohr    time.Time `json:"dohr" yaml:"dohr"`
	Asr     time.Time `json:"asr" yaml:"asr"`
	Maghreb time.Time `json:"maghreb" yaml:"maghreb"`
	Ishaa   time.Time `json:"ishaa" yaml:"ishaa"`

	FirstThirdOfNight time.Time `json:"first_third_of_night" yaml:"first_third_of_night"`
	Midnight          time.Time `json:"midnight" yaml:"midnight"`
	LastThirdOfNight  time.Time `json:"last_third_of_night" yaml:"last_third_of_night"`

	FajrTomorrow time.Time `json:"fajr_tomorrow" yaml:"fajr_tomorrow"`
}

// Compute builds the schedule for the calendar day of date, in date's zone.
// The time-of-day part of date is ignored.
func Compute(loc Location, date time.Time, cfg Config) (PrayerTimes, error) {
	if err := loc.Validate(); err != nil {
		return PrayerTimes{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PrayerTimes{}, err
	}
	day, err := startOfDay(date)
	if err != nil {
		return PrayerTimes{}, err
	}

	today := newSolarDay(loc, day, cfg)
	next := newSolarDay(loc, day.AddDate(0, 0, 1), cfg)

	maghreb := today.maghreb()
	fajr := today.fajr()
	night := 24 - (maghreb - fajr)

	pt := PrayerTimes{
		Date:     day,
		Location: loc,
		Config:   cfg,
		Hijri:    today.hijri,
	}

	steps := []struct {
		name  string
		day   time.Time
		hours float64
		dst   *time.Time
	}{
		{"fajr", day, fajr, &pt.Fajr},
		{"sherook", day, today.sherook(), &pt.Sherook},
		{"dohr", day, today.dohr, &pt.Dohr},
		{"asr", day, today.asr(), &pt.Asr},
		{"maghreb", day, maghreb, &pt.Maghreb},
		{"ishaa", day, today.ishaa(maghreb), &pt.Ishaa},
		{"first third of night", day, maghreb + night/3, &pt.FirstThirdOfNight},
		{"midnight", day, maghreb + night/2, &pt.Midnight},
		{"last third of night", day, maghreb + 2*night/3, &pt.LastThirdOfNight},
		{"fajr of the next day", next.date, next.fajr(), &pt.FajrTomorrow},
	}
	for _, s := range steps {
		t, err := hoursToTime(s.day, s.hours, cfg.IsSummer)
		if err != nil {
			return PrayerTimes{}, fmt.Errorf("%s on %s at %.4f, %.4f: %w",
				s.name, s.day.Format(time.DateOnly), loc.Latitude, loc.Longitude, err)
		}
		*s.dst = t
	}
	return pt, nil
}

func startOfDay(date time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: zero date", ErrInvalidDate)
	}
	y, m, d := date.Date()
	if y < 1 || y > 9999 {
		return time.Time{}, fmt.Errorf("%w: year %d outside 1..9999", ErrInvalidDate, y)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()), nil
}

// solarDay holds the per-day inputs shared by every prayer of one date.
// All results are decimal hours of local clock time.
type solarDay struct {
	date  time.Time
	lat   float64
	cfg   Config
	hijri calendar.HijriDate
	dohr  float64
}

func newSolarDay(loc Location, date time.Time, cfg Config) solarDay {
	d := solarDay{
		date:  date,
		lat:   loc.Latitude,
		cfg:   cfg,
		hijri: calendar.GregorianToHijri(date, cfg.HijriAdjustment),
	}
	jd := calendar.GregorianToJulian(date)
	d.dohr = 12 + (standardMeridian(date)-loc.Longitude)/15 + calendar.EquationOfTime(jd)/60
	return d
}

// standardMeridian returns the longitude of the zone's reference meridian,
// taken from its UTC offset at local noon so DST transitions at midnight
// do not leak into the day.
func standardMeridian(date time.Time) float64 {
	y, m, d := date.Date()
	_, offset := time.Date(y, m, d, 12, 0, 0, 0, date.Location()).Zone()
	return float64(offset) / 3600 * 15
}

func (d solarDay) asr() float64 {
	angle := solar.AsrAngle(d.date, d.lat, d.cfg.Madhab.ShadowFactor())
	return d.dohr + solar.TimeForAngle(angle, d.date, d.lat)
}

func (d solarDay) maghreb() float64 {
	return d.dohr + solar.TimeForAngle(solar.SunsetAngle, d.date, d.lat)
}

func (d solarDay) ishaa(maghreb float64) float64 {
	if iv := d.cfg.IshaInterval; iv.Enabled() {
		minutes := iv.AllYear
		if d.hijri.IsRamadan() {
			minutes = iv.Ramadan
		}
		return maghreb + minutes/60
	}
	return d.dohr + solar.TimeForAngle(d.cfg.IshaaAngle+90, d.date, d.lat)
}

func (d solarDay) fajr() float64 {
	return d.dohr - solar.TimeForAngle(d.cfg.FajrAngle+90, d.date, d.lat)
}

func (d solarDay) sherook() float64 {
	return d.dohr - solar.TimeForAngle(solar.SunsetAngle, d.date, d.lat)
}

// hoursToTime converts decimal hours on day into an instant. Minutes and
// seconds are truncated. Values outside [0, 24) roll onto the neighbouring
// date instead of wrapping within day.
func hoursToTime(day time.Time, value float64, summer bool) (time.Time, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < -24 || value >= 48 {
		return time.Time{}, ErrInvalidTime
	}

	minute := (value - math.Floor(value)) * 60
	second := (minute - math.Floor(minute)) * 60

	whole := int(math.Floor(value))
	if summer {
		whole++
	}
	shift := whole / 24
	if whole < 0 {
		shift = (whole - 23) / 24
	}
	hour := whole - shift*24
	m, s := int(minute), int(second)

	if hour < 0 || hour > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return time.Time{}, ErrInvalidTime
	}

	y, mo, d := day.Date()
	return time.Date(y, mo, d+shift, hour, m, s, 0, day.Location()), nil
}

// Schedule is a small builder over Compute for callers that assemble the
// inputs piecemeal.
type Schedule struct {
	loc  Location
	date time.Time
	cfg  Config
}

// NewSchedule starts a schedule for loc with DefaultConfig and today's date.
func NewSchedule(loc Location) Schedule {
	return Schedule{loc: loc, cfg: DefaultConfig()}
}

// On sets the day to compute.
func (s Schedule) On(date time.Time) Schedule {
	s.date = date
	return s
}

// Using replaces the calculation config.
func (s Schedule) Using(cfg Config) Schedule {
	s.cfg = cfg
	return s
}

// Calculate computes the schedule. Without a date, the current local day is used.
func (s Schedule) Calculate() (PrayerTimes, error) {
	date := s.date
	if date.IsZero() {
		date = time.Now()
	}
	return Compute(s.loc, date, s.cfg)
}
