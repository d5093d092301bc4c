package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/input"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

func TestLoopAdvance(t *testing.T) {
	l := NewLoop(1920, 1080, config.Default())
	start := time.Unix(1000, 0)

	if events := l.Advance(start, input.Frame{Right: true}); events != nil {
		t.Errorf("first Advance() = %v, expected nil", events)
	}
	if l.Snapshot().X != 0 {
		t.Error("first Advance() should not move the character")
	}

	l.Advance(start.Add(16*time.Millisecond), input.Frame{Right: true})
	if l.Snapshot().X <= 0 {
		t.Error("second Advance() should move the character")
	}

	before := l.Snapshot()
	events := l.Advance(start.Add(2*time.Second), input.Frame{Right: true})
	if len(events) != 1 || events[0].Kind != EventStalled {
		t.Errorf("events after a long gap = %v, expected a stall", events)
	}
	if l.Snapshot() != before {
		t.Error("stalled frame changed the state")
	}

	l.Advance(start.Add(2*time.Second+16*time.Millisecond), input.Frame{Right: true})
	if l.Snapshot().X <= before.X {
		t.Error("loop should resume measuring from the stalled timestamp")
	}

	applied, stalled := l.Frames()
	if applied != 2 || stalled != 1 {
		t.Errorf("Frames() = %d, %d, expected 2, 1", applied, stalled)
	}
}

func TestLoopResize(t *testing.T) {
	l := NewLoop(1920, 1080, config.Default())
	w := l.World()

	if l.Resize(1920, 1080) {
		t.Error("Resize() to the same size should not rebuild")
	}
	if !l.Resize(800, 600) {
		t.Fatal("Resize() to a new size should rebuild")
	}
	if l.World().GroundLevel == w.GroundLevel {
		t.Error("world was not rebuilt")
	}
	if s := l.Snapshot(); s.Y != l.World().GroundLevel {
		t.Errorf("Y = %v, expected the new ground %v", s.Y, l.World().GroundLevel)
	}
}

func TestLoopResizeClampsX(t *testing.T) {
	cfg := config.Default()
	l := NewLoop(1920, 1080, cfg)
	for i := 0; i < 2000; i++ {
		l.StepBy(16*time.Millisecond, input.Frame{Right: true})
	}

	l.Resize(320, 480)
	maxX := l.World().Width - cfg.Physics.CharacterWidth
	if x := l.Snapshot().X; x > maxX {
		t.Errorf("X = %v, expected at most %v after shrinking", x, maxX)
	}
}

func TestLoopWorldIsCopy(t *testing.T) {
	l := NewLoop(1280, 720, config.Default())
	w := l.World()
	w.Boxes[0].Label = "changed"

	if l.World().Boxes[0].Label != "ABOUT" {
		t.Error("World() should return a copy")
	}
}

func TestLoopCloseActiveAndReset(t *testing.T) {
	l := NewLoop(1920, 1080, config.Default())
	l.StepBy(16*time.Millisecond, input.Frame{})
	l.state.X = 200
	l.state.Broken = l.state.Broken.Add(world.BoxAbout)
	l.state.Active = world.BoxAbout
	l.state.Score = 3

	if id := l.CloseActive(); id != world.BoxAbout {
		t.Errorf("CloseActive() = %v, expected about", id)
	}
	if l.Snapshot().Active != world.BoxNone {
		t.Error("active box should be cleared")
	}
	if !l.Snapshot().Broken.Has(world.BoxAbout) {
		t.Error("closing the panel should not restore the box")
	}

	l.Reset()
	s := l.Snapshot()
	if s.X != 0 || s.Broken.Len() != 0 || s.Score != 3 {
		t.Errorf("after Reset: X=%v broken=%v score=%d", s.X, s.Broken.IDs(), s.Score)
	}
}

func TestEventKindString(t *testing.T) {
	if EventBoxBroken.String() != "box_broken" {
		t.Errorf("EventBoxBroken.String() = %q", EventBoxBroken.String())
	}
	if EventKind(99).String() != "unknown" {
		t.Error("unknown kinds should stringify as unknown")
	}
}
