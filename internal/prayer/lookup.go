package prayer

import (
	"fmt"
	"math"
	"time"
)

// TimeOf returns the instant of p in the schedule.
func (pt PrayerTimes) TimeOf(p Prayer) time.Time {
	switch p {
	case Fajr:
		return pt.Fajr
	case Sherook:
		return pt.Sherook
	case Dohr:
		return pt.Dohr
	case Asr:
		return pt.Asr
	case Maghreb:
		return pt.Maghreb
	case Ishaa:
		return pt.Ishaa
	}
	return time.Time{}
}

// window is the half-open interval [start, end) during which prayer is current.
type window struct {
	prayer     Prayer
	start, end time.Time
	// previousDay marks windows belonging to the evening before the schedule's day.
	previousDay bool
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

func (pt PrayerTimes) windows() []window {
	return []window{
		{prayer: Fajr, start: pt.Fajr, end: pt.Sherook},
		{prayer: Sherook, start: pt.Sherook, end: pt.Dohr},
		{prayer: Dohr, start: pt.Dohr, end: pt.Asr},
		{prayer: Asr, start: pt.Asr, end: pt.Maghreb},
		{prayer: Maghreb, start: pt.Maghreb, end: pt.Ishaa},
		{prayer: Ishaa, start: pt.Ishaa, end: pt.FajrTomorrow},
	}
}

// eveningBefore approximates the previous day's Maghreb and Ishaa by moving
// today's instants back one day. The Ishaa window closes at today's Fajr.
func (pt PrayerTimes) eveningBefore() []window {
	maghreb := pt.Maghreb.AddDate(0, 0, -1)
	ishaa := pt.Ishaa.AddDate(0, 0, -1)
	return []window{
		{prayer: Maghreb, start: maghreb, end: ishaa, previousDay: true},
		{prayer: Ishaa, start: ishaa, end: pt.Fajr, previousDay: true},
	}
}

func (pt PrayerTimes) currentWindow(now time.Time) (window, error) {
	for _, w := range pt.windows() {
		if w.contains(now) {
			return w, nil
		}
	}
	if now.Before(pt.Fajr) {
		for _, w := range pt.eveningBefore() {
			if w.contains(now) {
				return w, nil
			}
		}
	}
	return window{}, fmt.Errorf("%w at %s for schedule of %s",
		ErrNoCurrentPrayer, now.Format(time.RFC3339), pt.Date.Format(time.DateOnly))
}

// Current returns the prayer whose window contains now. Before today's Fajr
// the answer comes from the previous evening, so the small hours report Ishaa.
func (pt PrayerTimes) Current(now time.Time) (Prayer, error) {
	w, err := pt.currentWindow(now)
	if err != nil {
		return 0, err
	}
	return w.prayer, nil
}

// Next returns the prayer that follows Current(now).
func (pt PrayerTimes) Next(now time.Time) (Prayer, error) {
	cur, err := pt.Current(now)
	if err != nil {
		return 0, err
	}
	return cur.Next(), nil
}

// Until returns the time left before Next(now) begins. When that prayer
// already passed today (Ishaa to Fajr) its instant is taken one day later.
func (pt PrayerTimes) Until(now time.Time) (time.Duration, error) {
	w, err := pt.currentWindow(now)
	if err != nil {
		return 0, err
	}

	target := w.end
	if !w.previousDay {
		target = pt.TimeOf(w.prayer.Next())
		if target.Before(now) {
			target = target.AddDate(0, 0, 1)
		}
	}
	return target.Sub(now), nil
}

// TimeRemaining is Until rounded to whole minutes and split into hours and minutes.
func (pt PrayerTimes) TimeRemaining(now time.Time) (hours, minutes int, err error) {
	d, err := pt.Until(now)
	if err != nil {
		return 0, 0, err
	}
	total := int(math.Round(d.Minutes()))
	return total / 60, total % 60, nil
}
