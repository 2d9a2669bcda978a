package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Prayer identifies one of the six daily timings in chronological order.
type Prayer int

const (
	Fajr Prayer = iota
	Sherook
	Dohr
	Asr
	Maghreb
	Ishaa
)

// Prayers lists every Prayer in the order they occur during the day.
var Prayers = []Prayer{Fajr, Sherook, Dohr, Asr, Maghreb, Ishaa}

var prayerNames = [...]string{"Fajr", "Sherook", "Dohr", "Asr", "Maghreb", "Ishaa"}

var arabicNames = [...]string{"الفجر", "الشروق", "الظهر", "العصر", "المغرب", "العشاء"}

// String returns the English label, e.g. "Dohr".
func (p Prayer) String() string {
	if p < Fajr || p > Ishaa {
		return fmt.Sprintf("Prayer(%d)", int(p))
	}
	return prayerNames[p]
}

// ArabicName returns the Arabic label.
func (p Prayer) ArabicName() string {
	if p < Fajr || p > Ishaa {
		return ""
	}
	return arabicNames[p]
}

// Short returns the one-letter abbreviation used by compact output formats.
func (p Prayer) Short() string {
	return ShortNames[p.String()]
}

// Next returns the cyclic successor: Ishaa is followed by Fajr.
func (p Prayer) Next() Prayer {
	return (p + 1) % Prayer(len(prayerNames))
}

// MarshalText encodes the prayer by its English label.
func (p Prayer) MarshalText() ([]byte, error) {
	if p < Fajr || p > Ishaa {
		return nil, fmt.Errorf("unknown prayer %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText accepts any spelling ParsePrayer accepts.
func (p *Prayer) UnmarshalText(b []byte) error {
	v, err := ParsePrayer(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// prayerAliases maps lowercase spellings to prayers. The common transliterations
// are accepted so that config files written for other tools keep working.
var prayerAliases = map[string]Prayer{
	"fajr":    Fajr,
	"sherook": Sherook,
	"shorook": Sherook,
	"sunrise": Sherook,
	"dohr":    Dohr,
	"dhuhr":   Dohr,
	"zuhr":    Dohr,
	"asr":     Asr,
	"maghreb": Maghreb,
	"maghrib": Maghreb,
	"ishaa":   Ishaa,
	"isha":    Ishaa,
}

// ParsePrayer resolves a prayer name case-insensitively.
func ParsePrayer(s string) (Prayer, error) {
	p, ok := prayerAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown prayer %q", s)
	}
	return p, nil
}

// Timing is a named instant from a schedule: one of the six prayers or one
// of the night markers.
type Timing struct {
	Name string
	Time time.Time
}

// Night marker names, alongside the six prayer names.
const (
	FirstThird = "FirstThird"
	Midnight   = "Midnight"
	LastThird  = "LastThird"
)

// AllTimingNames lists every timing a schedule can report, in chronological order.
var AllTimingNames = []string{
	"Fajr", "Sherook", "Dohr", "Asr", "Maghreb", "Ishaa",
	FirstThird, Midnight, LastThird,
}

// DefaultTimingNames are the timings tracked by default.
var DefaultTimingNames = []string{
	"Fajr", "Sherook", "Dohr", "Asr", "Maghreb", "Ishaa",
}

// ShortNames maps timing names to short abbreviations.
var ShortNames = map[string]string{
	"Fajr":     "F",
	"Sherook":  "S",
	"Dohr":     "D",
	"Asr":      "A",
	"Maghreb":  "M",
	"Ishaa":    "I",
	FirstThird: "F3",
	Midnight:   "Mi",
	LastThird:  "L3",
}

// NormalizeTimingName maps a user-supplied name (any case, common
// transliterations included) onto its canonical entry in AllTimingNames.
func NormalizeTimingName(s string) (string, bool) {
	if p, err := ParsePrayer(s); err == nil {
		return p.String(), true
	}
	key := strings.ToLower(strings.TrimSpace(s))
	for _, name := range []string{FirstThird, Midnight, LastThird} {
		if strings.ToLower(name) == key {
			return name, true
		}
	}
	return "", false
}

// Timings returns the selected timings of the schedule, in the order given.
func (pt PrayerTimes) Timings(selected []string) ([]Timing, error) {
	out := make([]Timing, 0, len(selected))
	for _, raw := range selected {
		name, ok := NormalizeTimingName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown timing name: %s", raw)
		}
		out = append(out, Timing{Name: name, Time: pt.timingByName(name)})
	}
	return out, nil
}

func (pt PrayerTimes) timingByName(name string) time.Time {
	switch name {
	case FirstThird:
		return pt.FirstThirdOfNight
	case Midnight:
		return pt.Midnight
	case LastThird:
		return pt.LastThirdOfNight
	}
	p, _ := ParsePrayer(name)
	return pt.TimeOf(p)
}

// NextTiming returns the earliest timing strictly after now, or nil when
// every timing has passed (the caller should look at tomorrow's schedule).
func NextTiming(timings []Timing, now time.Time) *Timing {
	var next *Timing
	for i := range timings {
		if !timings[i].Time.After(now) {
			continue
		}
		if next == nil || timings[i].Time.Before(next.Time) {
			next = &timings[i]
		}
	}
	return next
}

// UpcomingTiming returns the first selected timing strictly after now. It
// looks at tomorrow's schedule once today's timings have all passed, and at
// yesterday's night markers, which fall after midnight.
func UpcomingTiming(loc Location, now time.Time, cfg Config, selected []string) (Timing, error) {
	today, err := Compute(loc, now, cfg)
	if err != nil {
		return Timing{}, err
	}
	timings, err := today.Timings(selected)
	if err != nil {
		return Timing{}, err
	}

	if hasNightMarker(timings) {
		yesterday, err := Compute(loc, now.AddDate(0, 0, -1), cfg)
		if err != nil {
			return Timing{}, err
		}
		earlier, err := yesterday.Timings(selected)
		if err != nil {
			return Timing{}, err
		}
		timings = append(earlier, timings...)
	}

	if next := NextTiming(timings, now); next != nil {
		return *next, nil
	}

	tomorrow, err := Compute(loc, now.AddDate(0, 0, 1), cfg)
	if err != nil {
		return Timing{}, err
	}
	timings, err = tomorrow.Timings(selected)
	if err != nil {
		return Timing{}, err
	}
	if next := NextTiming(timings, now); next != nil {
		return *next, nil
	}
	return Timing{}, fmt.Errorf("no upcoming timing among %s", strings.Join(selected, ", "))
}

func hasNightMarker(timings []Timing) bool {
	for _, t := range timings {
		switch t.Name {
		case FirstThird, Midnight, LastThird:
			return true
		}
	}
	return false
}

// Remaining returns the duration until the given timing.
func Remaining(t Timing, now time.Time) time.Duration {
	return t.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
