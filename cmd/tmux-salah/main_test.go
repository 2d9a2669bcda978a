package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var jakartaArgs = []string{
	"--latitude=-6.18233995", "--longitude=106.84287154",
	"--timezone=Asia/Jakarta", "--method=singapore",
}

func runTmux(t *testing.T, now time.Time, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	if err := run(args, &out, now); err != nil {
		t.Fatalf("run(%v): %v", args, err)
	}
	return out.String()
}

func jakartaTime(t *testing.T, d, hour, min int) time.Time {
	t.Helper()
	zone, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatal(err)
	}
	return time.Date(2021, 4, d, hour, min, 0, 0, zone)
}

// TestVersionFlag verifies that --version prints the version string.
func TestVersionFlag(t *testing.T) {
	prev := version
	version = "v1.2.3-test"
	t.Cleanup(func() { version = prev })

	got := strings.TrimSpace(runTmux(t, time.Now(), "--version"))
	if want := "tmux-salah v1.2.3-test"; got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// TestListMethodsFlag verifies that --list-methods prints calculation methods.
func TestListMethodsFlag(t *testing.T) {
	output := runTmux(t, time.Now(), "--list-methods")

	for _, m := range []string{
		"ISNA",
		"Muslim World League",
		"Umm Al-Qura",
		"Ministry of Awqaf, Jordan",
	} {
		if !strings.Contains(output, m) {
			t.Errorf("--list-methods output missing %q", m)
		}
	}
}

func TestFormats(t *testing.T) {
	now := jakartaTime(t, 9, 13, 0)

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Asr 15:12"},
		{[]string{"--format", "short-name-and-remaining"}, "A 2h 12m"},
		{[]string{"--format", "{{.Name}} in {{.Remaining}}"}, "Asr in 2h 12m"},
		{[]string{"--time-format", "12h"}, "Asr 3:12 PM"},
		{[]string{"--prayers", "Fajr, Maghreb"}, "Maghreb 17:54"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got := runTmux(t, now, append(jakartaArgs, tt.args...)...)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRollsToTomorrow(t *testing.T) {
	got := runTmux(t, jakartaTime(t, 9, 22, 0), jakartaArgs...)
	if got != "Fajr 04:36" {
		t.Errorf("got %q, want Fajr 04:36", got)
	}
}

func TestConfigFileFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "salah")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := `{"latitude": -6.18233995, "longitude": 106.84287154, "timezone": "Asia/Jakarta", "method": "singapore"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(nil, &out, jakartaTime(t, 9, 13, 0)); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Asr 15:12" {
		t.Errorf("got %q, want Asr 15:12", out.String())
	}
}

func TestPolarDayIsQuiet(t *testing.T) {
	// Tromsø at midsummer: the sun never sets, so there is no Maghreb.
	now := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	got := runTmux(t, now, "--latitude=69.6492", "--longitude=18.9553", "--timezone=UTC", "--log-level=off")
	if got != "--:--" {
		t.Errorf("got %q, want --:--", got)
	}
}

func TestNoLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	if err := run(nil, &out, time.Now()); err == nil {
		t.Error("expected an error without a location")
	}
}
