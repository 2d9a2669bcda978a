package prayer

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Method != MuslimWorldLeague || cfg.FajrAngle != 18 || cfg.IshaaAngle != 17 {
		t.Errorf("DefaultConfig() = %+v, want MWL 18/17", cfg)
	}
	if cfg.Madhab != Shafi {
		t.Errorf("Madhab = %v, want shafi", cfg.Madhab)
	}
	if cfg.IshaInterval.Enabled() || cfg.IsSummer || cfg.HijriAdjustment != 0 {
		t.Errorf("unexpected non-zero options: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfig_With(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IsSummer = true
	cfg.HijriAdjustment = -1

	got := cfg.With(MustLookupMethod(UmmAlQura), Hanafi)
	if got.Method != UmmAlQura || got.FajrAngle != 18.5 || !got.IshaInterval.Enabled() || got.Madhab != Hanafi {
		t.Errorf("With(makkah, hanafi) = %+v", got)
	}
	if !got.IsSummer || got.HijriAdjustment != -1 {
		t.Errorf("With dropped unrelated options: %+v", got)
	}
	if cfg.Method != MuslimWorldLeague {
		t.Error("With modified the receiver")
	}
}

func TestConfig_Validate(t *testing.T) {
	mutate := func(f func(*Config)) Config {
		c := DefaultConfig()
		f(&c)
		return c
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"interval without ishaa angle", DefaultConfig().With(MustLookupMethod(FixedInterval), Shafi), false},
		{"unknown madhab", mutate(func(c *Config) { c.Madhab = 7 }), true},
		{"zero fajr angle", mutate(func(c *Config) { c.FajrAngle = 0 }), true},
		{"fajr angle too deep", mutate(func(c *Config) { c.FajrAngle = 95 }), true},
		{"NaN ishaa angle", mutate(func(c *Config) { c.IshaaAngle = math.NaN() }), true},
		{"negative interval", mutate(func(c *Config) { c.IshaInterval = IshaInterval{AllYear: -5, Ramadan: -5} }), true},
		{"ramadan only", mutate(func(c *Config) { c.IshaInterval = IshaInterval{Ramadan: 120} }), true},
		{"hijri adjustment too big", mutate(func(c *Config) { c.HijriAdjustment = 3 }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestParseMadhab(t *testing.T) {
	tests := []struct {
		in      string
		want    Madhab
		wantErr bool
	}{
		{"shafi", Shafi, false},
		{"Hanafi", Hanafi, false},
		{"maliki", Shafi, false},
		{"HANBALI", Shafi, false},
		{"2", Hanafi, false},
		{"jafari", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMadhab(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("ParseMadhab(%q) error = %v, want ErrInvalidConfig", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMadhab(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMadhab(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMadhab_ShadowFactor(t *testing.T) {
	if Shafi.ShadowFactor() != 1 || Hanafi.ShadowFactor() != 2 {
		t.Errorf("shadow factors = %v/%v, want 1/2", Shafi.ShadowFactor(), Hanafi.ShadowFactor())
	}
}

func TestConfig_Encoding(t *testing.T) {
	cfg := DefaultConfig().With(MustLookupMethod(UmmAlQura), Hanafi)

	b, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"madhab":"hanafi"`) {
		t.Errorf("JSON does not name the madhab: %s", b)
	}

	y, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	var back Config
	if err := yaml.Unmarshal(y, &back); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, y)
	}
	if back != cfg {
		t.Errorf("YAML round trip = %+v, want %+v", back, cfg)
	}
}
