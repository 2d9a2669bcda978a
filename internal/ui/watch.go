// Package ui provides the live countdown shown by `salah watch`, using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/salah/internal/prayer"
)

// ScheduleFunc computes the schedule for the calendar day of date.
type ScheduleFunc func(date time.Time) (prayer.PrayerTimes, error)

// TickMsg triggers a refresh of the countdown.
type TickMsg time.Time

const tickInterval = time.Second

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	currentStyle = lipgloss.NewStyle().Bold(true)
	nextStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// Options configure the watch view.
type Options struct {
	Label      string           // shown in the title, e.g. the city
	TimeFormat string           // Go layout, "15:04" or "3:04 PM"
	Now        func() time.Time // clock, defaults to time.Now
}

// Model is the Bubble Tea model for the countdown.
type Model struct {
	schedule ScheduleFunc
	opts     Options

	times     prayer.PrayerTimes
	computed  bool
	now       time.Time
	current   prayer.Prayer
	next      prayer.Prayer
	remaining time.Duration
	err       error
}

// New returns a model that asks schedule for a fresh day whenever the date changes.
func New(schedule ScheduleFunc, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04"
	}
	return Model{schedule: schedule, opts: opts}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	now := m.opts.Now()
	return func() tea.Msg { return TickMsg(now) }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case TickMsg:
		m = m.refresh(time.Time(msg))
		return m, tickCmd()
	}
	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refresh recomputes the schedule when now falls on a different day and
// updates the current/next prayer.
func (m Model) refresh(now time.Time) Model {
	m.now = now
	if !m.computed || !sameDay(m.times.Date, now) {
		times, err := m.schedule(now)
		if err != nil {
			m.err = err
			m.computed = false
			return m
		}
		m.times = times
		m.computed = true
	}

	cur, err := m.times.Current(now)
	if err != nil {
		m.err = err
		return m
	}
	remaining, err := m.times.Until(now)
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.current = cur
	m.next = cur.Next()
	m.remaining = remaining
	return m
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n" + mutedStyle.Render("q to quit") + "\n"
	}
	if !m.computed {
		return mutedStyle.Render("computing…") + "\n"
	}

	var b strings.Builder

	title := "Prayer times"
	if m.opts.Label != "" {
		title += " · " + m.opts.Label
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	date := m.times.Date.Format("Mon 02 Jan 2006")
	if h := m.times.Hijri.Format(); h != "" {
		date += " · " + h
	}
	b.WriteString(mutedStyle.Render(date) + "\n\n")

	for _, p := range prayer.Prayers {
		line := fmt.Sprintf("%-8s %-7s %s", p.String(), p.ArabicName(), m.times.TimeOf(p).Format(m.opts.TimeFormat))
		switch p {
		case m.current:
			b.WriteString(currentStyle.Render("▸ "+line) + "\n")
		case m.next:
			b.WriteString(nextStyle.Render("  "+line) + "\n")
		default:
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s in %s", nextStyle.Render(m.next.String()), formatCountdown(m.remaining)))

	return boxStyle.Render(b.String()) + "\n" + mutedStyle.Render("q to quit") + "\n"
}

// formatCountdown renders d as H:MM:SS.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Current returns the prayer shown as current and the time left until the next one.
func (m Model) Current() (prayer.Prayer, time.Duration, error) {
	return m.current, m.remaining, m.err
}
