package input

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
)

func TestTouchZoneAt(t *testing.T) {
	cfg := config.Default().Input
	const w, h = 1000.0, 800.0

	tests := []struct {
		name     string
		x, y     float64
		expected Zone
	}{
		{"left strip", 100, 600, ZoneLeft},
		{"right strip", 900, 600, ZoneRight},
		{"middle", 500, 600, ZoneNone},
		{"top band left", 100, 100, ZoneNone},
		{"top band edge", 100, 240, ZoneNone},
		{"just below band", 100, 241, ZoneLeft},
		{"left boundary", 300, 600, ZoneNone},
		{"right boundary", 700, 600, ZoneNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TouchZoneAt(tc.x, tc.y, w, h, cfg); got != tc.expected {
				t.Errorf("TouchZoneAt(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if got := TouchZoneAt(10, 10, 0, 0, cfg); got != ZoneNone {
		t.Errorf("TouchZoneAt on an empty screen = %v, expected none", got)
	}
}

func TestIsSwipeUp(t *testing.T) {
	cfg := config.Default().Input

	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		d              time.Duration
		expected       bool
	}{
		{"quick swipe up", 500, 600, 510, 500, 150 * time.Millisecond, true},
		{"too short", 500, 600, 500, 560, 100 * time.Millisecond, false},
		{"too slow", 500, 600, 500, 400, 300 * time.Millisecond, false},
		{"too much drift", 500, 600, 620, 400, 100 * time.Millisecond, false},
		{"swipe down", 500, 400, 500, 600, 100 * time.Millisecond, false},
	}

	for _, tc := range tests {
		if got := IsSwipeUp(tc.x0, tc.y0, tc.x1, tc.y1, tc.d, cfg); got != tc.expected {
			t.Errorf("%s: IsSwipeUp() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestTouchGesture(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	if zone := n.TouchStart(50, 700, 1000, 800, now); zone != ZoneLeft {
		t.Fatalf("TouchStart() zone = %v, expected left", zone)
	}
	if !n.Left(now) {
		t.Error("touch in the left strip should hold left")
	}

	if !n.TouchEnd(60, 500, now.Add(100*time.Millisecond)) {
		t.Error("upward swipe should request a jump")
	}
	if n.Left(now) {
		t.Error("TouchEnd should release the zone")
	}
	if !n.Jump(now.Add(100 * time.Millisecond)) {
		t.Error("swipe should leave a pending jump")
	}

	if n.TouchEnd(0, 0, now) {
		t.Error("TouchEnd without TouchStart should do nothing")
	}
}
