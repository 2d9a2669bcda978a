package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smokyabdulrahman/salah/internal/prayer"
)

var jakartaZone = time.FixedZone("UTC+7", 7*3600)

// countingSchedule computes Jakarta schedules with the Singapore method and
// records how often it was asked.
func countingSchedule(t *testing.T, calls *int) ScheduleFunc {
	t.Helper()
	m, err := prayer.LookupMethod(prayer.Singapore)
	if err != nil {
		t.Fatal(err)
	}
	cfg := prayer.DefaultConfig().With(m, prayer.Shafi)
	loc := prayer.Location{Latitude: -6.18233995, Longitude: 106.84287154}
	return func(date time.Time) (prayer.PrayerTimes, error) {
		*calls++
		return prayer.Compute(loc, date, cfg)
	}
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg(at))
	if cmd == nil {
		t.Fatal("TickMsg should schedule the next tick")
	}
	return next.(Model)
}

func TestModel_Countdown(t *testing.T) {
	var calls int
	m := New(countingSchedule(t, &calls), Options{Label: "Jakarta"})

	m = tick(t, m, time.Date(2021, 4, 19, 12, 0, 0, 0, jakartaZone))

	cur, remaining, err := m.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur != prayer.Dohr {
		t.Errorf("current = %v, want Dohr", cur)
	}
	if want := 3*time.Hour + 11*time.Minute + 51*time.Second; remaining != want {
		t.Errorf("remaining = %v, want %v", remaining, want)
	}

	view := m.View()
	for _, want := range []string{"Jakarta", "Ramadan 1442", "Dohr", "11:51", "Asr in 3:11:51", "q to quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_RecomputesOnlyWhenDayChanges(t *testing.T) {
	var calls int
	m := New(countingSchedule(t, &calls), Options{})

	m = tick(t, m, time.Date(2021, 4, 19, 22, 0, 0, 0, jakartaZone))
	m = tick(t, m, time.Date(2021, 4, 19, 23, 59, 59, 0, jakartaZone))
	if calls != 1 {
		t.Fatalf("schedule computed %d times within one day, want 1", calls)
	}

	m = tick(t, m, time.Date(2021, 4, 20, 0, 0, 1, 0, jakartaZone))
	if calls != 2 {
		t.Fatalf("schedule computed %d times after midnight, want 2", calls)
	}

	cur, _, err := m.Current()
	if err != nil || cur != prayer.Ishaa {
		t.Errorf("after midnight current = %v, %v; want Ishaa", cur, err)
	}
}

func TestModel_ScheduleError(t *testing.T) {
	m := New(func(time.Time) (prayer.PrayerTimes, error) {
		return prayer.PrayerTimes{}, prayer.ErrInvalidTime
	}, Options{})

	m = tick(t, m, time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC))

	if _, _, err := m.Current(); !errors.Is(err, prayer.ErrInvalidTime) {
		t.Errorf("error = %v, want ErrInvalidTime", err)
	}
	if !strings.Contains(m.View(), "invalid time of day") {
		t.Errorf("View() does not show the error:\n%s", m.View())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := New(nil, Options{})

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%q: expected a command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: expected tea.QuitMsg", key.String())
		}
	}
}

func TestModel_InitUsesClock(t *testing.T) {
	at := time.Date(2021, 4, 9, 6, 0, 0, 0, jakartaZone)
	m := New(nil, Options{Now: func() time.Time { return at }})

	msg := m.Init()()
	if got, ok := msg.(TickMsg); !ok || !time.Time(got).Equal(at) {
		t.Errorf("Init() message = %#v, want TickMsg(%v)", msg, at)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{-time.Minute, "0:00:00"},
		{59*time.Second + 900*time.Millisecond, "0:00:59"},
		{5*time.Hour + 34*time.Minute + 54*time.Second, "5:34:54"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
