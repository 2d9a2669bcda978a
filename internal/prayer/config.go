package prayer

import (
	"fmt"
	"math"
	"strings"
)

// Madhab selects the Asr shadow rule.
type Madhab int

const (
	// Shafi starts Asr when an object's shadow equals its length (plus the
	// noon shadow). Maliki and Hanbali follow the same rule.
	Shafi Madhab = 1
	// Hanafi waits for twice the object's length.
	Hanafi Madhab = 2
)

// ShadowFactor returns the shadow length multiplier for Asr.
func (m Madhab) ShadowFactor() float64 {
	if m == Hanafi {
		return 2
	}
	return 1
}

func (m Madhab) String() string {
	switch m {
	case Shafi:
		return "shafi"
	case Hanafi:
		return "hanafi"
	}
	return fmt.Sprintf("madhab(%d)", int(m))
}

func (m Madhab) MarshalText() ([]byte, error) {
	if m != Shafi && m != Hanafi {
		return nil, fmt.Errorf("%w: unknown madhab %d", ErrInvalidConfig, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Madhab) UnmarshalText(b []byte) error {
	v, err := ParseMadhab(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMadhab resolves a school name. Maliki and Hanbali map to Shafi since
// they share its Asr rule.
func ParseMadhab(s string) (Madhab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shafi", "shafii", "standard", "maliki", "hanbali", "1":
		return Shafi, nil
	case "hanafi", "2":
		return Hanafi, nil
	}
	return 0, fmt.Errorf("%w: unknown madhab %q", ErrInvalidConfig, s)
}

// Config holds every parameter of a schedule computation.
type Config struct {
	// Method is the key of the preset the angles came from. It is
	// informational only; the angles below are authoritative.
	Method       string       `json:"method,omitempty" yaml:"method,omitempty"`
	FajrAngle    float64      `json:"fajr_angle" yaml:"fajr_angle"`
	IshaaAngle   float64      `json:"ishaa_angle" yaml:"ishaa_angle"`
	Madhab       Madhab       `json:"madhab" yaml:"madhab"`
	IshaInterval IshaInterval `json:"isha_interval" yaml:"isha_interval"`

	// IsSummer adds one hour to every computed time. It stacks on the
	// zone's own offset, so pair it with a fixed-offset zone.
	IsSummer bool `json:"is_summer" yaml:"is_summer"`

	// HijriAdjustment shifts the Hijri date by whole days before the
	// Ramadan check, to follow local moon sighting.
	HijriAdjustment int `json:"hijri_adjustment" yaml:"hijri_adjustment"`
}

// DefaultConfig returns the Muslim World League method with the Shafi Asr rule.
func DefaultConfig() Config {
	return Config{}.With(MustLookupMethod(MuslimWorldLeague), Shafi)
}

// With returns a copy of c using the angles and interval of m and the given madhab.
func (c Config) With(m Method, madhab Madhab) Config {
	c.Method = m.Key
	c.FajrAngle = m.FajrAngle
	c.IshaaAngle = m.IshaaAngle
	c.IshaInterval = m.IshaInterval
	c.Madhab = madhab
	return c
}

// Validate checks that c can drive a computation.
func (c Config) Validate() error {
	if c.Madhab != Shafi && c.Madhab != Hanafi {
		return fmt.Errorf("%w: unknown madhab %d", ErrInvalidConfig, int(c.Madhab))
	}
	if c.HijriAdjustment < -2 || c.HijriAdjustment > 2 {
		return fmt.Errorf("%w: hijri adjustment %d outside -2..2", ErrInvalidConfig, c.HijriAdjustment)
	}
	return validateAngles(c.FajrAngle, c.IshaaAngle, c.IshaInterval)
}

func validateAngles(fajr, ishaa float64, interval IshaInterval) error {
	if !isFinite(fajr) || fajr <= 0 || fajr >= 90 {
		return fmt.Errorf("%w: fajr angle %v outside (0, 90)", ErrInvalidConfig, fajr)
	}
	if !isFinite(interval.AllYear) || !isFinite(interval.Ramadan) || interval.AllYear < 0 || interval.Ramadan < 0 {
		return fmt.Errorf("%w: negative isha interval", ErrInvalidConfig)
	}
	if (interval.AllYear > 0) != (interval.Ramadan > 0) {
		return fmt.Errorf("%w: isha interval needs both all_year and ramadan", ErrInvalidConfig)
	}
	if interval.Enabled() {
		return nil
	}
	if !isFinite(ishaa) || ishaa <= 0 || ishaa >= 90 {
		return fmt.Errorf("%w: ishaa angle %v outside (0, 90)", ErrInvalidConfig, ishaa)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
