// Package config provides persistent configuration for the salah CLI.
//
// Configuration is stored as JSON at ~/.config/salah/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
// User-defined calculation methods live next to it in methods.toml.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah/internal/logx"
	"github.com/smokyabdulrahman/salah/internal/prayer"
)

const (
	configDirName   = "salah"
	configFileName  = "config.json"
	methodsFileName = "methods.toml"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude",
	"timezone", "label",
	"method", "madhab",
	"summer", "hijri_adjustment",
	"time_format",
	"prayers",
	"log_level",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults). Numeric and boolean settings are
// pointers so that 0 and false can be stored explicitly.
type Config struct {
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Timezone        string   `json:"timezone,omitempty"` // IANA name, e.g. "Asia/Jakarta"
	Label           string   `json:"label,omitempty"`    // display name for the location
	Method          string   `json:"method,omitempty"`   // method key, e.g. "mwl"
	Madhab          string   `json:"madhab,omitempty"`   // "shafi" or "hanafi"
	Summer          *bool    `json:"summer,omitempty"`
	HijriAdjustment *int     `json:"hijri_adjustment,omitempty"`
	TimeFormat      string   `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers         string   `json:"prayers,omitempty"`     // comma-separated list
	LogLevel        string   `json:"log_level,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     prayer.MuslimWorldLeague,
		Madhab:     prayer.Shafi.String(),
		TimeFormat: "24h",
		Prayers:    strings.Join(prayer.DefaultTimingNames, ","),
		LogLevel:   "warn",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// MethodsPath returns the path of the user methods table.
func MethodsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, methodsFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

var methodKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// Method keys are only checked for shape here; the CLI resolves them against
// the built-in and user method tables.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = &v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = &v
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", value, err)
		}
		c.Timezone = value
	case "label":
		c.Label = value
	case "method":
		v := strings.ToLower(strings.TrimSpace(value))
		if !methodKeyPattern.MatchString(v) {
			return fmt.Errorf("invalid method %q: must be a method key such as %q", value, prayer.MuslimWorldLeague)
		}
		c.Method = v
	case "madhab":
		m, err := prayer.ParseMadhab(value)
		if err != nil {
			return fmt.Errorf("invalid madhab %q: must be \"shafi\" or \"hanafi\"", value)
		}
		c.Madhab = m.String()
	case "summer":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid summer %q: must be true or false", value)
		}
		c.Summer = &v
	case "hijri_adjustment":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid hijri_adjustment %q: must be an integer", value)
		}
		if v < -2 || v > 2 {
			return fmt.Errorf("invalid hijri_adjustment %q: must be between -2 and 2", value)
		}
		c.HijriAdjustment = &v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		// Store canonical names so later reads need no normalisation.
		names := strings.Split(value, ",")
		for i, n := range names {
			canonical, ok := prayer.NormalizeTimingName(n)
			if !ok {
				return fmt.Errorf("invalid prayer name %q in prayers list", strings.TrimSpace(n))
			}
			names[i] = canonical
		}
		c.Prayers = strings.Join(names, ",")
	case "log_level":
		if _, err := logx.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", value, err)
		}
		c.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		if c.Latitude == nil {
			return "", nil
		}
		return strconv.FormatFloat(*c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == nil {
			return "", nil
		}
		return strconv.FormatFloat(*c.Longitude, 'f', -1, 64), nil
	case "timezone":
		return c.Timezone, nil
	case "label":
		return c.Label, nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "summer":
		if c.Summer == nil {
			return "", nil
		}
		return strconv.FormatBool(*c.Summer), nil
	case "hijri_adjustment":
		if c.HijriAdjustment == nil {
			return "", nil
		}
		return strconv.Itoa(*c.HijriAdjustment), nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// HasLocation reports whether both coordinates are set.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Zone resolves the configured timezone, falling back to the local zone.
func (c *Config) Zone() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q in config: %w", c.Timezone, err)
	}
	return loc, nil
}

// SummerOrDefault returns the summer flag, falling back to the given default.
func (c *Config) SummerOrDefault(def bool) bool {
	if c.Summer != nil {
		return *c.Summer
	}
	return def
}

// HijriAdjustmentOrDefault returns the Hijri adjustment, falling back to the given default.
func (c *Config) HijriAdjustmentOrDefault(def int) int {
	if c.HijriAdjustment != nil {
		return *c.HijriAdjustment
	}
	return def
}
