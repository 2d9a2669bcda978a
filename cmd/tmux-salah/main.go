package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/logx"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/spf13/pflag"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// options mirrors the command-line flags. Unset flags fall back to the salah config file.
type options struct {
	latitude    float64
	longitude   float64
	timezone    string
	method      string
	madhab      string
	summer      bool
	format      string
	timeFormat  string
	prayers     string
	logLevel    string
	showVersion bool
	listMethods bool
}

func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tmux-salah", pflag.ContinueOnError)

	// Location flags
	fs.Float64Var(&o.latitude, "latitude", 0, "Latitude in degrees, north positive")
	fs.Float64Var(&o.longitude, "longitude", 0, "Longitude in degrees, east positive")
	fs.StringVar(&o.timezone, "timezone", "", "IANA timezone (default: config, then local)")

	// Calculation flags
	fs.StringVar(&o.method, "method", "", "Calculation method key (default: config, then mwl)")
	fs.StringVar(&o.madhab, "madhab", "", "Asr rule: shafi or hanafi")
	fs.BoolVar(&o.summer, "summer", false, "Add one hour to every time")

	// Display flags
	fs.StringVar(&o.format, "format", prayer.FormatNameAndTime, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .ArabicName, .Time, .Remaining, .Hours, .Minutes")
	fs.StringVar(&o.timeFormat, "time-format", "", "Time format: 12h or 24h")
	fs.StringVar(&o.prayers, "prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sherook,Dohr,Asr,Maghreb,Ishaa)")
	fs.StringVar(&o.logLevel, "log-level", "error", "Log level for stderr diagnostics")

	// Info flags
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.listMethods, "list-methods", false, "Print supported calculation methods and exit")

	return fs
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer, now time.Time) error {
	var o options
	fs := newFlagSet(&o)
	fs.SetOutput(w)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if o.showVersion {
		fmt.Fprintf(w, "tmux-salah %s\n", version)
		return nil
	}

	log, err := logx.NewStderr(o.logLevel)
	if err != nil {
		return err
	}

	methods := loadMethods(log)
	if o.listMethods {
		printMethods(w, methods)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(fs, &o, cfg)

	if !cfg.HasLocation() {
		return fmt.Errorf("no location: pass --latitude and --longitude or set them with 'salah config set'")
	}
	loc := prayer.Location{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}

	zone, err := cfg.Zone()
	if err != nil {
		return err
	}

	m, err := methods.Lookup(cfg.Method)
	if err != nil {
		return err
	}
	madhab, err := prayer.ParseMadhab(cfg.Madhab)
	if err != nil {
		return err
	}
	pc := prayer.Config{}.With(m, madhab)
	pc.IsSummer = cfg.SummerOrDefault(false)
	pc.HijriAdjustment = cfg.HijriAdjustmentOrDefault(0)

	selected := prayer.DefaultTimingNames
	if cfg.Prayers != "" {
		selected = strings.Split(cfg.Prayers, ",")
		for i := range selected {
			selected[i] = strings.TrimSpace(selected[i])
		}
	}

	goTimeFmt := "15:04"
	if cfg.TimeFormat == "12h" {
		goTimeFmt = "3:04 PM"
	}

	// Re-anchor "now" to the configured zone so the calendar day matches the location.
	now = now.In(zone)

	next, err := prayer.UpcomingTiming(loc, now, pc, selected)
	if errors.Is(err, prayer.ErrInvalidTime) {
		// The sun never reaches one of the angles (high latitudes). Keep the
		// status bar quiet rather than printing an error into it.
		log.Warn("no prayer time today", logx.Err(err))
		fmt.Fprint(w, "--:--")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprint(w, prayer.FormatOutput(next, now, o.format, goTimeFmt))
	return nil
}

// applyFlags overrides cfg with every flag given on the command line and
// fills the remaining gaps with defaults.
func applyFlags(fs *pflag.FlagSet, o *options, cfg *config.Config) {
	defaults := config.Defaults()

	if fs.Changed("latitude") {
		cfg.Latitude = &o.latitude
	}
	if fs.Changed("longitude") {
		cfg.Longitude = &o.longitude
	}
	if fs.Changed("timezone") {
		cfg.Timezone = o.timezone
	}
	if fs.Changed("method") {
		cfg.Method = o.method
	} else if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if fs.Changed("madhab") {
		cfg.Madhab = o.madhab
	} else if cfg.Madhab == "" {
		cfg.Madhab = defaults.Madhab
	}
	if fs.Changed("summer") {
		cfg.Summer = &o.summer
	}
	if fs.Changed("time-format") {
		cfg.TimeFormat = o.timeFormat
	}
	if fs.Changed("prayers") {
		cfg.Prayers = o.prayers
	}
}

// loadMethods merges the user's methods.toml over the built-in table.
func loadMethods(log logx.Logger) prayer.MethodSet {
	builtin := prayer.BuiltinMethods()
	path, err := config.MethodsPath()
	if err != nil {
		return builtin
	}
	user, err := prayer.LoadMethodsFile(path)
	if err != nil {
		log.Warn("ignoring user methods file", logx.String("path", path), logx.Err(err))
		return builtin
	}
	return builtin.Merge(user)
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer, methods prayer.MethodSet) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %s\n", "Key", "Name")
	fmt.Fprintf(w, "  %-10s %s\n", "───", "────")
	for _, m := range methods {
		fmt.Fprintf(w, "  %-10s %s\n", m.Key, m.Name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <key> to select a calculation method.")
}
