package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	pt, err := s.schedule(s.now)
	if err != nil {
		return err
	}
	timings, err := pt.Timings(s.selected)
	if err != nil {
		return err
	}

	// Before today's Fajr, the current prayer is yesterday's Ishaa.
	current, err := pt.Current(s.now)
	hasCurrent := err == nil
	if err != nil && !errors.Is(err, prayer.ErrNoCurrentPrayer) {
		return err
	}

	next, err := prayer.UpcomingTiming(s.location, s.now, s.config, s.selected)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if structured() {
		return printTodayStructured(out, s, pt, timings, current, hasCurrent, next)
	}

	printTodayRich(out, s, pt, timings, current, hasCurrent, next)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s *session, pt prayer.PrayerTimes, timings []prayer.Timing, current prayer.Prayer, hasCurrent bool, next prayer.Timing) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.label)
	fmt.Fprintf(w, "  %s\n", display.Gray(fmt.Sprintf("%s · %s, %s", s.zone, s.method.Name, s.config.Madhab)))
	fmt.Fprintf(w, "  %s\n", pt.Date.Format("Monday 02 January 2006"))
	if h := pt.Hijri.Format(); h != "" {
		fmt.Fprintf(w, "  %s\n", h)
	}
	fmt.Fprintln(w)

	// Find the widest timing name for alignment.
	maxNameLen := 0
	for _, t := range timings {
		maxNameLen = max(maxNameLen, display.Width(t.Name))
	}

	shown := false
	for _, t := range timings {
		line := fmt.Sprintf("  %s  %s", padRight(t.Name, maxNameLen), t.Time.Format(s.layout))

		switch {
		case t.Name == next.Name && t.Time.Equal(next.Time):
			shown = true
			remaining := prayer.FormatRemaining(prayer.Remaining(next, s.now))
			fmt.Fprintln(w, display.Accent(line)+display.Accent(fmt.Sprintf("  <- next in %s", remaining)))
		case hasCurrent && t.Name == current.String():
			fmt.Fprintln(w, display.Dim(line))
		default:
			fmt.Fprintln(w, line)
		}
	}

	// The next timing belongs to tomorrow's or yesterday's schedule.
	if !shown {
		remaining := prayer.FormatRemaining(prayer.Remaining(next, s.now))
		fmt.Fprintln(w)
		fmt.Fprintln(w, display.Accent(fmt.Sprintf("  next: %s at %s, in %s", next.Name, next.Time.Format(s.layout), remaining)))
	}

	fmt.Fprintln(w)
}

// padRight pads a string to the given printed width with spaces.
func padRight(s string, width int) string {
	w := display.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// todayJSON is the structured output of the root command.
type todayJSON struct {
	Location locationJSON      `json:"location" yaml:"location"`
	Date     todayJSONDate     `json:"date" yaml:"date"`
	Timings  map[string]string `json:"timings" yaml:"timings"`
	Current  string            `json:"current,omitempty" yaml:"current,omitempty"`
	Next     *todayJSONNext    `json:"next" yaml:"next"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian" yaml:"gregorian"`
	Hijri     string `json:"hijri" yaml:"hijri"`
	Ramadan   bool   `json:"ramadan" yaml:"ramadan"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer" yaml:"prayer"`
	Time      string `json:"time" yaml:"time"`
	Remaining string `json:"remaining" yaml:"remaining"`
}

func printTodayStructured(w io.Writer, s *session, pt prayer.PrayerTimes, timings []prayer.Timing, current prayer.Prayer, hasCurrent bool, next prayer.Timing) error {
	out := todayJSON{
		Location: s.locationJSON(),
		Date: todayJSONDate{
			Gregorian: pt.Date.Format("02 Jan 2006"),
			Hijri:     pt.Hijri.Format(),
			Ramadan:   pt.Hijri.IsRamadan(),
		},
		Timings: timingsMap(timings, s.layout),
		Next: &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(s.layout),
			Remaining: prayer.FormatRemaining(prayer.Remaining(next, s.now)),
		},
	}
	if hasCurrent {
		out.Current = strings.ToLower(current.String())
	}
	return writeStructured(w, out)
}

