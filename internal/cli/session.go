package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/logx"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/spf13/cobra"
)

var errNoLocation = errors.New("no location set; pass --latitude and --longitude or run 'salah config set latitude <deg>' and 'salah config set longitude <deg>'")

// session holds the resolved inputs of one command invocation.
type session struct {
	location prayer.Location
	zone     *time.Location
	label    string
	method   prayer.Method
	config   prayer.Config
	layout   string   // Go time layout for printed times
	selected []string // canonical timing names
	now      time.Time
}

// newSession merges flags, config and defaults and resolves them into
// computation inputs.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg := effectiveConfig(cmd)

	if !cfg.HasLocation() {
		return nil, errNoLocation
	}
	loc := prayer.Location{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	zone, err := cfg.Zone()
	if err != nil {
		return nil, err
	}

	methods := loadMethods()
	method, err := methods.Lookup(cfg.Method)
	if err != nil {
		return nil, fmt.Errorf("%w; run 'salah methods' for the list", err)
	}
	madhab, err := prayer.ParseMadhab(cfg.Madhab)
	if err != nil {
		return nil, err
	}

	pc := prayer.Config{}.With(method, madhab)
	pc.IsSummer = cfg.SummerOrDefault(false)
	pc.HijriAdjustment = cfg.HijriAdjustmentOrDefault(0)
	if err := pc.Validate(); err != nil {
		return nil, err
	}

	selected, err := splitPrayers(cfg.Prayers)
	if err != nil {
		return nil, err
	}

	s := &session{
		location: loc,
		zone:     zone,
		label:    buildLocationStr(cfg.Label, loc),
		method:   method,
		config:   pc,
		layout:   timeLayout(cfg.TimeFormat),
		selected: selected,
		// Re-anchor "now" to the configured zone so the calendar day matches
		// the location rather than the machine.
		now: nowFunc().In(zone),
	}

	logger.Debug("schedule inputs",
		logx.Float64("lat", loc.Latitude),
		logx.Float64("lon", loc.Longitude),
		logx.String("zone", zone.String()),
		logx.String("method", method.Key),
		logx.String("madhab", madhab.String()),
		logx.Bool("summer", pc.IsSummer),
		logx.Int("hijri_adjustment", pc.HijriAdjustment),
	)
	return s, nil
}

// loadMethods returns the built-in method table with the user's methods.toml
// merged over it. An unreadable file is logged and ignored.
func loadMethods() prayer.MethodSet {
	builtin := prayer.BuiltinMethods()

	path, err := config.MethodsPath()
	if err != nil {
		logger.Warn("user methods disabled", logx.Err(err))
		return builtin
	}
	user, err := prayer.LoadMethodsFile(path)
	if err != nil {
		logger.Warn("ignoring user methods file", logx.String("path", path), logx.Err(err))
		return builtin
	}
	if len(user) > 0 {
		logger.Debug("user methods loaded", logx.String("path", path), logx.Int("count", len(user)))
	}
	return builtin.Merge(user)
}

// schedule computes the schedule for the calendar day of date.
func (s *session) schedule(date time.Time) (prayer.PrayerTimes, error) {
	return prayer.Compute(s.location, date.In(s.zone), s.config)
}

// days computes n consecutive schedules starting today.
func (s *session) days(n int) ([]prayer.PrayerTimes, error) {
	out := make([]prayer.PrayerTimes, 0, n)
	for i := 0; i < n; i++ {
		pt, err := s.schedule(s.now.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

// buildLocationStr returns the label, or the coordinates when no label is set.
func buildLocationStr(label string, loc prayer.Location) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
}

// timeLayout maps the time_format setting onto a Go layout.
func timeLayout(format string) string {
	if format == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// splitPrayers parses a comma-separated timing list into canonical names.
func splitPrayers(list string) ([]string, error) {
	var out []string
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		name, ok := prayer.NormalizeTimingName(raw)
		if !ok {
			return nil, fmt.Errorf("unknown prayer %q; valid names: %s", raw, strings.Join(prayer.AllTimingNames, ", "))
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return prayer.DefaultTimingNames, nil
	}
	return out, nil
}
