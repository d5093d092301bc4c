package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/input"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// Step advances s by dt and returns the new state plus what happened.
// Steps with dt above the stall threshold, or negative dt, return s unchanged.
func Step(w world.World, s State, f input.Frame, dt time.Duration, cfg config.PhysicsConfig) (State, []Event) {
	if dt < 0 || dt > cfg.StallThreshold() {
		return s, []Event{{Kind: EventStalled}}
	}

	var events []Event
	s.Clock += dt
	ms := float64(dt) / float64(time.Millisecond)

	s = stepHorizontal(w, s, f, ms, cfg)
	s, events = restoreBoxes(w, s, cfg, events)
	s, events = stepVertical(w, s, f, cfg, events)
	return s, events
}

func stepHorizontal(w world.World, s State, f input.Frame, ms float64, cfg config.PhysicsConfig) State {
	target := 0.0
	switch {
	case f.Left:
		target = -cfg.MoveSpeed
		s.FacingRight = false
	case f.Right:
		target = cfg.MoveSpeed
		s.FacingRight = true
	}

	if target != 0 {
		s.VX = core.Approach(s.VX, target, cfg.Acceleration*ms)
	} else {
		s.VX = core.Approach(s.VX, 0, cfg.Deceleration*ms)
	}

	s.X += s.VX * ms

	maxX := math.Max(0, w.Width-cfg.CharacterWidth)
	if s.X <= 0 || s.X >= maxX {
		s.X = core.ClampF(s.X, 0, maxX)
		s.VX = 0
	}
	return s
}

// restoreBoxes closes every broken box the character has walked clear of.
func restoreBoxes(w world.World, s State, cfg config.PhysicsConfig, events []Event) (State, []Event) {
	if s.Broken.Len() == 0 {
		return s, events
	}
	char := s.Bounds(cfg)
	for _, b := range w.Boxes {
		if !s.Broken.Has(b.ID) {
			continue
		}
		pastRight := char.Left() > b.Bounds.Right()+cfg.RestoreBuffer
		pastLeft := char.Right() < b.Bounds.Left()-cfg.RestoreBuffer
		if !pastRight && !pastLeft {
			continue
		}
		s.Broken = s.Broken.Remove(b.ID)
		events = append(events, Event{Kind: EventBoxRestored, Box: b.ID})
		if s.Active == b.ID {
			s.Active = world.BoxNone
			events = append(events, Event{Kind: EventActiveCleared, Box: b.ID})
		}
	}
	return s, events
}

func stepVertical(w world.World, s State, f input.Frame, cfg config.PhysicsConfig, events []Event) (State, []Event) {
	char := s.Bounds(cfg)

	// Hits from below are resolved before gravity, against the current velocity.
	if s.VY < 0 {
		s, events = hitFromBelow(w, s, char, cfg, events)
	}

	support := supportLevel(w, s, char, cfg)

	if f.Jump && !s.Airborne && s.Clock-s.LastJumpAt >= cfg.JumpCooldown() &&
		s.Y >= support-cfg.GroundBandAbove && s.Y <= support+cfg.GroundBandBelow {
		s.VY = cfg.JumpPower
		s.Airborne = true
		s.LastJumpAt = s.Clock
		events = append(events, Event{Kind: EventJumped})
	}

	// Walked off a box edge.
	if !s.Airborne && s.Y < support {
		s.Airborne = true
	}

	prevY := s.Y
	if s.Airborne {
		s.VY += cfg.Gravity
		s.Y += s.VY
	}

	// The cap only stops ascents that cross it; a jump from a box top
	// above the cap line is not pulled back down.
	capY := w.GroundLevel - cfg.MaxJumpHeight
	if s.VY < 0 && s.Y < capY && prevY >= capY {
		s.Y = capY
		s.VY = 0
	}

	if s.Airborne && s.VY >= 0 && s.Y >= support {
		s.Y = support
		s.VY = 0
		s.Airborne = false
		events = append(events, Event{Kind: EventLanded})
	}

	if vh := float64(w.ViewportH); vh > 0 && s.Y > vh {
		s.Y = vh
	}
	return s, events
}

// hitFromBelow breaks at most one box whose bottom edge the character's top
// edge reaches this frame while rising.
func hitFromBelow(w world.World, s State, char core.AABB, cfg config.PhysicsConfig, events []Event) (State, []Event) {
	top := char.Top()
	for _, b := range w.Boxes {
		if s.Broken.Has(b.ID) || !char.OverlapsX(b.Bounds) {
			continue
		}
		bottom := b.Bounds.Bottom()
		if s.Y <= bottom || top < bottom-cfg.HitTolerance || top+s.VY > bottom+cfg.HitTolerance {
			continue
		}

		s.VY = cfg.BounceVelocity
		if cfg.SingleActiveBox && s.Active != world.BoxNone && s.Active != b.ID {
			events = append(events, Event{Kind: EventBoxBlocked, Box: b.ID})
			return s, events
		}
		s.Broken = s.Broken.Add(b.ID)
		s.Active = b.ID
		s.Score++
		events = append(events, Event{Kind: EventBoxBroken, Box: b.ID})
		return s, events
	}
	return s, events
}

// supportLevel returns the highest surface under the character that it is
// at or above: the ground, or the top of a box it can land on.
func supportLevel(w world.World, s State, char core.AABB, cfg config.PhysicsConfig) float64 {
	support := w.GroundLevel
	for _, b := range w.Boxes {
		if !char.OverlapsX(b.Bounds) {
			continue
		}
		top := b.Bounds.Top()
		if s.Y <= top+cfg.LandTolerance && top < support {
			support = top
		}
	}
	return support
}
