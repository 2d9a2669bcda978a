package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/spf13/cobra"
)

// maxDays bounds list and query ranges.
const maxDays = 366

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// parseDays parses a positive day count, also accepting "week" and "month".
func parseDays(s string) (int, error) {
	switch s {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxDays {
		return 0, fmt.Errorf("invalid number of days: %q (must be 1-%d, 'week' or 'month')", s, maxDays)
	}
	return n, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDays(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	schedules, err := s.days(days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if structured() {
		return printListStructured(out, s, schedules)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times · %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.label)
	fmt.Fprintln(out)

	headers := append([]string{"Date", "Hijri"}, s.selected...)
	tbl := display.NewTable(headers)
	tbl.SetTitle(fmt.Sprintf("%s · %s, %s", s.zone, s.method.Name, s.config.Madhab))

	for i, pt := range schedules {
		timings, err := pt.Timings(s.selected)
		if err != nil {
			return err
		}

		row := []string{pt.Date.Format("Mon 02 Jan"), hijriShort(pt)}
		for _, t := range timings {
			row = append(row, t.Time.Format(s.layout))
		}
		tbl.AddRow(row)

		if sameDate(pt.Date, s.now) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// hijriShort renders the Hijri date as "27 Shaban", leaving out the year.
func hijriShort(pt prayer.PrayerTimes) string {
	if name := pt.Hijri.MonthName(); name != "" {
		return fmt.Sprintf("%d %s", pt.Hijri.Day, name)
	}
	return ""
}

// sameDate reports whether a and b fall on the same calendar day in a's zone.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// listJSON is the structured output of the list command.
type listJSON struct {
	Location locationJSON  `json:"location" yaml:"location"`
	Days     []listJSONDay `json:"days" yaml:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date" yaml:"date"`
	Hijri   string            `json:"hijri" yaml:"hijri"`
	Timings map[string]string `json:"timings" yaml:"timings"`
}

func printListStructured(w io.Writer, s *session, schedules []prayer.PrayerTimes) error {
	out := listJSON{Location: s.locationJSON()}

	for _, pt := range schedules {
		timings, err := pt.Timings(s.selected)
		if err != nil {
			return err
		}
		out.Days = append(out.Days, listJSONDay{
			Date:    pt.Date.Format("2006-01-02"),
			Hijri:   pt.Hijri.Format(),
			Timings: timingsMap(timings, s.layout),
		})
	}
	return writeStructured(w, out)
}
