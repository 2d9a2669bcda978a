package solar

import (
	"math"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salah/internal/calendar"
)

const jakartaLat = -6.18233995

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeclination(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		min, max float64
	}{
		{"June solstice", day(2024, 6, 21), 23.3, 23.5},
		{"December solstice", day(2024, 12, 21), -23.5, -23.3},
		{"March equinox", day(2024, 3, 20), -0.5, 0.5},
		{"regression date", day(2021, 4, 9), 7.76, 7.78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Declination(calendar.GregorianToJulian(tt.date))
			if got < tt.min || got > tt.max {
				t.Errorf("Declination = %.4f°, want between %.2f° and %.2f°", got, tt.min, tt.max)
			}
		})
	}
}

func TestTimeForAngle_Sunset(t *testing.T) {
	// Close to the equator the day is almost exactly twelve hours long.
	got := TimeForAngle(SunsetAngle, day(2021, 4, 9), jakartaLat)
	if math.Abs(got-6.0) > 0.001 {
		t.Errorf("TimeForAngle(sunset) = %.6f h, want ~6.0 h", got)
	}
}

func TestTimeForAngle_NonNegative(t *testing.T) {
	angles := []float64{SunsetAngle, 108, 110, 105}
	lats := []float64{-40, -6.2, 0, 21.4, 45}
	for _, a := range angles {
		for _, lat := range lats {
			got := TimeForAngle(a, day(2024, 9, 1), lat)
			if math.IsNaN(got) || got < 0 {
				t.Errorf("TimeForAngle(%v, lat=%v) = %v, want a non-negative number", a, lat, got)
			}
		}
	}
}

func TestTimeForAngle_DeeperAngleIsFurtherFromNoon(t *testing.T) {
	d := day(2024, 9, 1)
	sunset := TimeForAngle(SunsetAngle, d, 30)
	dusk := TimeForAngle(90+18, d, 30)
	if dusk <= sunset {
		t.Errorf("18° twilight (%.4f h) should end after sunset (%.4f h)", dusk, sunset)
	}
}

func TestTimeForAngle_PolarDay(t *testing.T) {
	// Tromsø at the June solstice: the sun never sets.
	got := TimeForAngle(SunsetAngle, day(2024, 6, 21), 69.65)
	if !math.IsNaN(got) {
		t.Errorf("TimeForAngle during polar day = %v, want NaN", got)
	}
}

func TestAsrAngle(t *testing.T) {
	d := day(2021, 4, 9)
	shafi := AsrAngle(d, jakartaLat, 1)
	hanafi := AsrAngle(d, jakartaLat, 2)

	if math.Abs(shafi-(-51.3045)) > 0.001 {
		t.Errorf("AsrAngle(shafi) = %.4f, want ~-51.3045", shafi)
	}
	if math.Abs(hanafi-(-66.0224)) > 0.001 {
		t.Errorf("AsrAngle(hanafi) = %.4f, want ~-66.0224", hanafi)
	}

	// A longer shadow means a lower sun, so Hanafi Asr is later.
	if TimeForAngle(hanafi, d, jakartaLat) <= TimeForAngle(shafi, d, jakartaLat) {
		t.Error("Hanafi Asr should be later than Shafi Asr")
	}
}
