package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/smokyabdulrahman/salah/internal/config"
	"github.com/smokyabdulrahman/salah/internal/display"
	"github.com/smokyabdulrahman/salah/internal/logx"
	"github.com/smokyabdulrahman/salah/internal/prayer"
	"github.com/smokyabdulrahman/salah/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  salah config set latitude 21.4225\n  salah config set longitude 39.8262\n  salah config set timezone Asia/Riyadh\n  salah config set method makkah\n  salah config set madhab hanafi\n  salah config set time_format 12h\n  salah config set prayers Fajr,Dohr,Asr,Maghreb,Ishaa",
			strings.Join(config.ValidKeys, ", ")),
		// Values such as -6.18 or -1 would otherwise parse as shorthand flags.
		DisableFlagParsing: true,
		Args: func(cmd *cobra.Command, args []string) error {
			args = setArgs(args)
			if wantsHelp(args) {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	methods := loadMethods()
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Gray("(not set)")
		}
		// Add the method's full name to its key.
		if key == "method" && val != "" {
			shown = formatMethodValue(methods, val)
		}
		fmt.Fprintf(out, "  %-17s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	args = setArgs(args)
	if wantsHelp(args) {
		return cmd.Help()
	}
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if key == "method" {
		if _, err := loadMethods().Lookup(cfg.Method); err != nil {
			return fmt.Errorf("%w; run 'salah methods' for the list", err)
		}
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	logger.Info("config updated", logx.String("key", key), logx.String("value", stored))
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// setArgs drops a leading "--" left in place when flag parsing is off.
func setArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

func wantsHelp(args []string) bool {
	return len(args) > 0 && (args[0] == "-h" || args[0] == "--help")
}

// runConfigGet prints a single value, empty when unset.
func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the key.
func formatMethodValue(methods prayer.MethodSet, val string) string {
	if m, err := methods.Lookup(val); err == nil {
		return fmt.Sprintf("%s (%s)", val, m.Name)
	}
	return val
}

// formatAngle renders a depression angle in degrees without trailing zeros.
func formatAngle(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64) + "°"
}

// formatIshaa describes how a method places Ishaa.
func formatIshaa(m prayer.Method) string {
	if !m.IshaInterval.Enabled() {
		return formatAngle(m.IshaaAngle)
	}
	s := strconv.FormatFloat(m.IshaInterval.AllYear, 'f', -1, 64) + " min after Maghreb"
	if m.IshaInterval.Ramadan != m.IshaInterval.AllYear {
		s += fmt.Sprintf(" (%s in Ramadan)", strconv.FormatFloat(m.IshaInterval.Ramadan, 'f', -1, 64))
	}
	return s
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the built-in calculation methods together with any defined in methods.toml next to the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods := loadMethods()
			out := cmd.OutOrStdout()

			if structured() {
				return writeStructured(out, methods)
			}

			tbl := display.NewTable([]string{"Key", "Name", "Fajr", "Ishaa"})
			tbl.SetTitle("Supported calculation methods")
			for _, m := range methods {
				tbl.AddRow([]string{m.Key, m.Name, formatAngle(m.FajrAngle), formatIshaa(m)})
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  Use --method <key> or 'salah config set method <key>' to select one.")
			if path, err := config.MethodsPath(); err == nil {
				fmt.Fprintf(out, "  Add your own in %s.\n", path)
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show a live countdown to the next prayer",
		Long:  "Open a full-screen view of today's schedule with a countdown that updates every second. Press q to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			model := ui.New(s.schedule, ui.Options{
				Label:      s.label,
				TimeFormat: s.layout,
				Now:        func() time.Time { return nowFunc().In(s.zone) },
			})
			p := tea.NewProgram(model,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}
}
