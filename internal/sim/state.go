// Package sim advances the character through the world one frame at a time.
//
// Step is a pure transition: it takes the previous State by value and returns
// the next one. Loop owns the authoritative State and is the only writer;
// presentation layers read copies obtained from Snapshot.
package sim

import (
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// State is the kinematic and box state after a frame.
// Y is the distance from the viewport top to the character's bottom edge,
// so larger values are lower on screen.
type State struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	FacingRight bool    `json:"facing_right"`
	Airborne    bool    `json:"airborne"`

	// Clock is the simulated time; LastJumpAt is measured on it.
	Clock      time.Duration `json:"clock"`
	LastJumpAt time.Duration `json:"last_jump_at"`

	Broken world.BoxSet `json:"broken"`
	Active world.BoxID  `json:"active"`
	Score  int          `json:"score"`
}

// NewState places the character at the left edge, standing on the ground.
func NewState(w world.World, cfg config.PhysicsConfig) State {
	return State{
		Y:           w.GroundLevel,
		FacingRight: true,
		LastJumpAt:  -cfg.JumpCooldown(),
	}
}

// Bounds returns the character's bounding box in world space.
func (s State) Bounds(cfg config.PhysicsConfig) core.AABB {
	return core.NewAABB(s.X, s.Y-cfg.CharacterHeight, cfg.CharacterWidth, cfg.CharacterHeight)
}

// OnGround reports whether the character is resting on something.
func (s State) OnGround() bool {
	return !s.Airborne
}

// EventKind classifies something that happened during a step.
type EventKind int

const (
	EventStalled EventKind = iota
	EventJumped
	EventLanded
	EventBoxBroken
	EventBoxBlocked
	EventBoxRestored
	EventActiveCleared
)

var eventNames = map[EventKind]string{
	EventStalled:       "stalled",
	EventJumped:        "jumped",
	EventLanded:        "landed",
	EventBoxBroken:     "box_broken",
	EventBoxBlocked:    "box_blocked",
	EventBoxRestored:   "box_restored",
	EventActiveCleared: "active_cleared",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event reports a discrete change. Box is set for box events.
type Event struct {
	Kind EventKind   `json:"kind"`
	Box  world.BoxID `json:"box,omitempty"`
}
