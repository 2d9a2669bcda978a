package cli

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nSuited to status bars such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

// nextJSON is the structured output of the next command.
type nextJSON struct {
	Prayer    string `json:"prayer" yaml:"prayer"`
	Arabic    string `json:"arabic,omitempty" yaml:"arabic,omitempty"`
	Time      string `json:"time" yaml:"time"`
	At        string `json:"at" yaml:"at"`
	Remaining string `json:"remaining" yaml:"remaining"`
	Minutes   int    `json:"minutes" yaml:"minutes"`
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		s.selected, err = splitPrayers(flagPrayers)
		if err != nil {
			return err
		}
	}

	next, err := prayer.UpcomingTiming(s.location, s.now, s.config, s.selected)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if structured() {
		remaining := prayer.Remaining(next, s.now)
		v := nextJSON{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(s.layout),
			At:        next.Time.Format("2006-01-02T15:04:05Z07:00"),
			Remaining: prayer.FormatRemaining(remaining),
			Minutes:   int(remaining.Minutes()),
		}
		if p, err := prayer.ParsePrayer(next.Name); err == nil {
			v.Arabic = p.ArabicName()
		}
		return writeStructured(out, v)
	}

	fmt.Fprint(out, prayer.FormatOutput(next, s.now, flagFormat, s.layout))
	return nil
}
