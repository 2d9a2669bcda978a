package cli

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude        float64
	FlagLongitude       float64
	FlagTimezone        string
	FlagLabel           string
	FlagMethod          string
	FlagMadhab          string
	FlagSummer          bool
	FlagHijriAdjustment int
	FlagJSON            bool
	FlagYAML            bool
	FlagTimeFormat      string
	FlagLogLevel        string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// logger is configured in PersistentPreRunE from --log-level or the config file.
var logger = logx.Nop()

// nowFunc is the clock used by every command. Tests replace it.
var nowFunc = time.Now

// NewRootCmd creates the root command for the salah CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salah",
		Short:   "Islamic prayer times CLI",
		Long:    "Compute Islamic prayer times offline from a location, a calculation method and a madhab.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg

			level := cfg.LogLevel
			if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "log-level") {
				level = FlagLogLevel
			}
			if level == "" {
				level = config.Defaults().LogLevel
			}
			l, err := logx.NewStderr(level)
			if err != nil {
				return err
			}
			logger = l.With(logx.String("cmd", cmd.Name()))
			logger.Debug("config loaded", logx.Bool("has_location", cfg.HasLocation()), logx.String("method", cfg.Method))
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude in degrees, north positive")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude in degrees, east positive")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA timezone, e.g. Asia/Jakarta (default: config, then local)")
	pf.StringVar(&FlagLabel, "label", "", "Display name for the location")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method key (see 'salah methods')")
	pf.StringVar(&FlagMadhab, "madhab", "", "Asr rule: shafi or hanafi")
	pf.BoolVar(&FlagSummer, "summer", false, "Add one hour to every time (daylight saving on a fixed offset)")
	pf.IntVar(&FlagHijriAdjustment, "hijri-adjustment", 0, "Shift the Hijri date by -2..2 days")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.BoolVar(&FlagYAML, "yaml", false, "Output as YAML (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn, error or off")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("salah %s\n", version)
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "latitude") {
		lat := FlagLatitude
		cfg.Latitude = &lat
	}
	if flagWasSet(flags, root, "longitude") {
		lon := FlagLongitude
		cfg.Longitude = &lon
	}
	if flagWasSet(flags, root, "timezone") {
		cfg.Timezone = FlagTimezone
	}
	if flagWasSet(flags, root, "label") {
		cfg.Label = FlagLabel
	}
	if flagWasSet(flags, root, "method") {
		cfg.Method = FlagMethod
	} else if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "madhab") {
		cfg.Madhab = FlagMadhab
	} else if cfg.Madhab == "" {
		cfg.Madhab = defaults.Madhab
	}
	if flagWasSet(flags, root, "summer") {
		summer := FlagSummer
		cfg.Summer = &summer
	}
	if flagWasSet(flags, root, "hijri-adjustment") {
		adj := FlagHijriAdjustment
		cfg.HijriAdjustment = &adj
	}

	// Time format: CLI flag > config > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}
	if cfg.Prayers == "" {
		cfg.Prayers = defaults.Prayers
	}

	return &cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
