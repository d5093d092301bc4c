package input

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
)

// Zone is an on-screen touch region.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneLeft
	ZoneRight
)

func (z Zone) String() string {
	switch z {
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	default:
		return "none"
	}
}

// TouchZoneAt classifies a touch at (x, y) on a w x h screen. The side
// strips below the top band steer; everything else is neutral.
func TouchZoneAt(x, y, w, h float64, cfg config.InputConfig) Zone {
	if w <= 0 || h <= 0 || y <= h*cfg.TouchTopFraction {
		return ZoneNone
	}
	switch {
	case x < w*cfg.TouchZoneFraction:
		return ZoneLeft
	case x > w*(1-cfg.TouchZoneFraction):
		return ZoneRight
	default:
		return ZoneNone
	}
}

type swipeTracker struct {
	active bool
	x, y   float64
	at     time.Time
	zone   Zone
}

// IsSwipeUp reports whether a gesture from (x0, y0) to (x1, y1) taking d
// counts as an upward swipe.
func IsSwipeUp(x0, y0, x1, y1 float64, d time.Duration, cfg config.InputConfig) bool {
	dy := y0 - y1
	dx := math.Abs(x1 - x0)
	return dy > cfg.SwipeMinDistance && d < cfg.SwipeMaxDuration() && dx < cfg.SwipeMaxDrift
}

// TouchStart begins a touch at (x, y) on a w x h screen and activates the
// zone under it.
func (n *Normalizer) TouchStart(x, y, w, h float64, now time.Time) Zone {
	zone := TouchZoneAt(x, y, w, h, n.cfg)
	n.mu.Lock()
	n.swipe = swipeTracker{active: true, x: x, y: y, at: now, zone: zone}
	n.mu.Unlock()
	n.SetTouch(zone, true)
	return zone
}

// TouchEnd finishes the touch started by TouchStart. An upward swipe
// becomes a jump button press. It reports whether a jump was requested.
func (n *Normalizer) TouchEnd(x, y float64, now time.Time) bool {
	n.mu.Lock()
	s := n.swipe
	n.swipe = swipeTracker{}
	n.mu.Unlock()
	if !s.active {
		return false
	}
	n.SetTouch(s.zone, false)

	if IsSwipeUp(s.x, s.y, x, y, now.Sub(s.at), n.cfg) {
		n.PressJump(now)
		return true
	}
	return false
}
