package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\nValid names: " +
			strings.Join(prayer.AllTimingNames, ", ") + " (common spellings such as Dhuhr, Sunrise, Maghrib and Isha are accepted)",
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	name, ok := prayer.NormalizeTimingName(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.AllTimingNames, ", "))
	}

	days := 1
	if flagQueryDays != "" {
		n, err := parseDays(flagQueryDays)
		if err != nil {
			return fmt.Errorf("invalid --days value: %w", err)
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	s.selected = []string{name}

	schedules, err := s.days(days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if days == 1 {
		return printQuerySingle(out, s, name, schedules[0])
	}
	return printQueryMulti(out, s, name, schedules)
}

func queryTime(pt prayer.PrayerTimes, name string) (prayer.Timing, error) {
	timings, err := pt.Timings([]string{name})
	if err != nil {
		return prayer.Timing{}, err
	}
	return timings[0], nil
}

func printQuerySingle(w io.Writer, s *session, name string, pt prayer.PrayerTimes) error {
	t, err := queryTime(pt, name)
	if err != nil {
		return err
	}
	timeStr := t.Time.Format(s.layout)

	if structured() {
		return writeStructured(w, queryJSONSingle{
			Prayer: strings.ToLower(name),
			Time:   timeStr,
			Date:   pt.Date.Format("2006-01-02"),
			Hijri:  pt.Hijri.Format(),
		})
	}

	fmt.Fprintf(w, "%s %s\n", name, timeStr)
	return nil
}

func printQueryMulti(w io.Writer, s *session, name string, schedules []prayer.PrayerTimes) error {
	if structured() {
		out := queryJSONMulti{Location: s.locationJSON(), Prayer: strings.ToLower(name)}
		for _, pt := range schedules {
			t, err := queryTime(pt, name)
			if err != nil {
				return err
			}
			out.Days = append(out.Days, queryJSONDay{
				Date:  pt.Date.Format("2006-01-02"),
				Hijri: pt.Hijri.Format(),
				Time:  t.Time.Format(s.layout),
			})
		}
		return writeStructured(w, out)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("%s Times · %d Days", name, len(schedules))))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.label)
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", name})
	for i, pt := range schedules {
		t, err := queryTime(pt, name)
		if err != nil {
			return err
		}
		tbl.AddRow([]string{pt.Date.Format("Mon 02 Jan"), t.Time.Format(s.layout)})

		if sameDate(pt.Date, s.now) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer" yaml:"prayer"`
	Time   string `json:"time" yaml:"time"`
	Date   string `json:"date" yaml:"date"`
	Hijri  string `json:"hijri" yaml:"hijri"`
}

type queryJSONMulti struct {
	Location locationJSON   `json:"location" yaml:"location"`
	Prayer   string         `json:"prayer" yaml:"prayer"`
	Days     []queryJSONDay `json:"days" yaml:"days"`
}

type queryJSONDay struct {
	Date  string `json:"date" yaml:"date"`
	Hijri string `json:"hijri" yaml:"hijri"`
	Time  string `json:"time" yaml:"time"`
}
