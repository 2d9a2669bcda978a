package display

import (
	"strings"
	"testing"
)

// withColor forces colors on for the duration of a test.
func withColor(t *testing.T) {
	t.Helper()
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(false) })
}

func TestStyles_Enabled(t *testing.T) {
	withColor(t)

	funcs := []struct {
		name string
		fn   func(string) string
		code string
	}{
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
		{"Green", Green, "32"},
		{"Yellow", Yellow, "33"},
		{"Cyan", Cyan, "36"},
		{"Gray", Gray, "90"},
		{"Accent", Accent, "36"},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			got := f.fn("hello")
			if !strings.Contains(got, "hello") {
				t.Fatalf("%s(\"hello\") = %q, text lost", f.name, got)
			}
			if !strings.HasPrefix(got, "\033[") || !strings.Contains(got, f.code) {
				t.Errorf("%s(\"hello\") = %q, want escape containing %q", f.name, got, f.code)
			}
			if !strings.HasSuffix(got, "\033[0m") {
				t.Errorf("%s(\"hello\") = %q, want trailing reset", f.name, got)
			}
		})
	}
}

func TestAccent_IsBold(t *testing.T) {
	withColor(t)

	if got := Accent("next"); !strings.Contains(got, "1") || got == Cyan("next") {
		t.Errorf("Accent(\"next\") = %q, want bold cyan", got)
	}
}

func TestBoldf(t *testing.T) {
	withColor(t)

	got := Boldf("count: %d", 42)
	if got != Bold("count: 42") {
		t.Errorf("Boldf = %q, want %q", got, Bold("count: 42"))
	}
}

func TestEnabled_ReportsState(t *testing.T) {
	SetEnabled(true)
	if !Enabled() {
		t.Error("Enabled() should return true after SetEnabled(true)")
	}

	SetEnabled(false)
	if Enabled() {
		t.Error("Enabled() should return false after SetEnabled(false)")
	}
}

func TestAllColors_Disabled_ReturnPlainText(t *testing.T) {
	SetEnabled(false)

	funcs := []struct {
		name string
		fn   func(string) string
	}{
		{"Bold", Bold},
		{"Dim", Dim},
		{"Green", Green},
		{"Yellow", Yellow},
		{"Cyan", Cyan},
		{"Gray", Gray},
		{"Accent", Accent},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			got := f.fn("plain")
			if got != "plain" {
				t.Errorf("%s(\"plain\") with colors disabled = %q, want \"plain\"", f.name, got)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	withColor(t)

	if got := Width(Bold("abc")); got != 3 {
		t.Errorf("Width(Bold(abc)) = %d, want 3", got)
	}
	if got := Width("──"); got != 2 {
		t.Errorf("Width(box dashes) = %d, want 2", got)
	}
}
