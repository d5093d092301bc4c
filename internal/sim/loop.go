package sim

import (
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/input"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// Loop owns the world and the authoritative state. It is not safe for
// concurrent use: exactly one goroutine drives it.
type Loop struct {
	physics  config.PhysicsConfig
	geometry config.WorldConfig

	world world.World
	state State

	last    time.Time
	started bool
	frames  int
	stalls  int
}

// NewLoop builds the world for a w x h viewport and places the character
// at the start.
func NewLoop(w, h int, cfg config.Config) *Loop {
	l := &Loop{
		physics:  cfg.Physics,
		geometry: cfg.World,
	}
	l.world = world.Build(w, h, cfg.World)
	l.state = NewState(l.world, cfg.Physics)
	return l
}

// Advance runs one frame at wall time now. The first call only records
// the timestamp. A gap above the stall threshold is skipped and the clock
// resynchronised, so the next frame measures from now.
func (l *Loop) Advance(now time.Time, f input.Frame) []Event {
	if !l.started {
		l.started = true
		l.last = now
		return nil
	}
	dt := now.Sub(l.last)
	l.last = now
	return l.StepBy(dt, f)
}

// StepBy runs one frame with an explicit dt, bypassing wall time.
func (l *Loop) StepBy(dt time.Duration, f input.Frame) []Event {
	next, events := Step(l.world, l.state, f, dt, l.physics)
	if len(events) == 1 && events[0].Kind == EventStalled {
		l.stalls++
		return events
	}
	l.state = next
	l.frames++
	return events
}

// Resize rebuilds the world when the viewport size changed and reports
// whether it did. The character keeps its x, is clamped into the new
// world and dropped back to the new ground.
func (l *Loop) Resize(w, h int) bool {
	if l.world.SameViewport(w, h) {
		return false
	}
	l.world = world.Build(w, h, l.geometry)

	s := l.state
	if maxX := l.world.Width - l.physics.CharacterWidth; s.X > maxX {
		s.X = maxX
	}
	if s.X < 0 {
		s.X = 0
	}
	if !s.Airborne || s.Y > l.world.GroundLevel {
		s.Y = l.world.GroundLevel
		s.VY = 0
		s.Airborne = false
	}
	l.state = s
	return true
}

// CloseActive clears the active box without restoring it, as when the
// reader dismisses the content panel.
func (l *Loop) CloseActive() world.BoxID {
	id := l.state.Active
	l.state.Active = world.BoxNone
	return id
}

// Reset returns the character to the start. The score is kept.
func (l *Loop) Reset() {
	score := l.state.Score
	l.state = NewState(l.world, l.physics)
	l.state.Score = score
	l.started = false
}

// Snapshot returns a copy of the current state.
func (l *Loop) Snapshot() State {
	return l.state
}

// World returns a copy of the current world.
func (l *Loop) World() world.World {
	w := l.world
	w.Boxes = append([]world.Box(nil), l.world.Boxes...)
	return w
}

// Physics returns the physics configuration in use.
func (l *Loop) Physics() config.PhysicsConfig {
	return l.physics
}

// Frames returns how many frames were applied and how many were skipped.
func (l *Loop) Frames() (applied, stalled int) {
	return l.frames, l.stalls
}
