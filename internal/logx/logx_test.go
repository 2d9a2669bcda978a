package logx

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelOff, false},
		{"verbose", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug).With(String("cmd", "today"))

	log.Info("schedule computed",
		Float64("lat", 21.4225),
		Int("days", 7),
		Bool("summer", false),
		Time("date", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		Duration("took", 3*time.Millisecond),
		Err(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{"schedule computed", "cmd=today", "lat=21.4225", "days=7", "summer=false", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn)

	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("below-level events were written: %q", buf.String())
	}
	if log.Enabled(LevelInfo) {
		t.Error("Enabled(info) = true at warn level")
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn event missing: %q", buf.String())
	}
}

func TestLogger_NilErrIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelDebug).Error("no error attached", Err(nil))
	if strings.Contains(buf.String(), "err=") {
		t.Errorf("nil error produced a field: %q", buf.String())
	}
}

func TestLogger_ZeroAndNopAreSilent(t *testing.T) {
	var zero Logger
	zero.Error("nothing")
	Nop().Error("nothing")

	if zero.Enabled(LevelError) {
		t.Error("zero Logger reports Enabled")
	}
}

func TestLogger_WithDoesNotAlias(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, LevelDebug).With(String("a", "1"))
	_ = base.With(String("b", "2"))

	base.Info("msg")
	if strings.Contains(buf.String(), "b=2") {
		t.Errorf("derived logger leaked fields into its parent: %q", buf.String())
	}
}
