// Package input folds keyboard, touch-zone and on-screen button events into
// one normalized record that the simulation reads once per frame.
package input

import (
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
)

// Control is a normalized movement input.
type Control int

const (
	ControlNone Control = iota
	ControlLeft
	ControlRight
	ControlJump
)

func (c Control) String() string {
	switch c {
	case ControlLeft:
		return "left"
	case ControlRight:
		return "right"
	case ControlJump:
		return "jump"
	default:
		return "none"
	}
}

// keyControls maps key names from terminals ("left", "a", " ") and
// browsers ("ArrowLeft", "Space") onto controls. Lookups are lowercased.
var keyControls = map[string]Control{
	"left":       ControlLeft,
	"arrowleft":  ControlLeft,
	"a":          ControlLeft,
	"right":      ControlRight,
	"arrowright": ControlRight,
	"d":          ControlRight,
	"up":         ControlJump,
	"arrowup":    ControlJump,
	"w":          ControlJump,
	" ":          ControlJump,
	"space":      ControlJump,
}

// ControlForKey returns the control bound to a key name, or ControlNone.
func ControlForKey(key string) Control {
	return keyControls[strings.ToLower(key)]
}

// Frame is the input snapshot consumed by one simulation step.
type Frame struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Jump  bool `json:"jump"`
}

type keyState struct {
	down  bool      // explicit key-down without a key-up yet
	until time.Time // repeat-press sources stay held until this instant
}

func (k keyState) held(now time.Time) bool {
	return k.down || now.Before(k.until)
}

// Normalizer merges the input sources. Event handlers may run on other
// goroutines than the frame loop, so every method is safe for concurrent use.
type Normalizer struct {
	mu  sync.Mutex
	cfg config.InputConfig

	cooldown time.Duration
	lastJump time.Time
	jumped   bool

	keys       [4]keyState // indexed by Control
	touchLeft  bool
	touchRight bool
	jumpLatch  time.Time // on-screen jump button, valid until this instant

	swipe swipeTracker
}

// NewNormalizer creates a normalizer with the given timing and the jump
// cooldown shared by every source.
func NewNormalizer(cfg config.InputConfig, cooldown time.Duration) *Normalizer {
	return &Normalizer{cfg: cfg, cooldown: cooldown}
}

// KeyDown marks a key as held until KeyUp. Unknown keys are ignored and
// reported as false.
func (n *Normalizer) KeyDown(key string) bool {
	c := ControlForKey(key)
	if c == ControlNone {
		return false
	}
	n.mu.Lock()
	n.keys[c].down = true
	n.mu.Unlock()
	return true
}

// KeyUp releases a key held by KeyDown or Press.
func (n *Normalizer) KeyUp(key string) bool {
	c := ControlForKey(key)
	if c == ControlNone {
		return false
	}
	n.mu.Lock()
	n.keys[c] = keyState{}
	n.mu.Unlock()
	return true
}

// Press records a key press from a source without key-up events. The key
// counts as held until the hold timeout passes without another press.
func (n *Normalizer) Press(key string, now time.Time) bool {
	c := ControlForKey(key)
	if c == ControlNone {
		return false
	}
	n.mu.Lock()
	n.keys[c].until = now.Add(n.cfg.HoldTimeout())
	if c == ControlLeft {
		n.keys[ControlRight].until = time.Time{}
	} else if c == ControlRight {
		n.keys[ControlLeft].until = time.Time{}
	}
	n.mu.Unlock()
	return true
}

// SetTouch sets or clears a touch zone.
func (n *Normalizer) SetTouch(zone Zone, active bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch zone {
	case ZoneLeft:
		n.touchLeft = active
	case ZoneRight:
		n.touchRight = active
	}
}

// PressJump records a discrete jump button press. It stays pending until a
// jump is accepted or the hold timeout expires.
func (n *Normalizer) PressJump(now time.Time) {
	n.mu.Lock()
	n.jumpLatch = now.Add(n.cfg.HoldTimeout())
	n.mu.Unlock()
}

// Left reports whether any left source is held.
func (n *Normalizer) Left(now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.keys[ControlLeft].held(now) || n.touchLeft
}

// Right reports whether any right source is held.
func (n *Normalizer) Right(now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.keys[ControlRight].held(now) || n.touchRight
}

// Jump reports whether a jump is requested and the cooldown has elapsed.
func (n *Normalizer) Jump(now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.jumpLocked(now)
}

func (n *Normalizer) jumpLocked(now time.Time) bool {
	if n.jumped && now.Sub(n.lastJump) < n.cooldown {
		return false
	}
	return n.keys[ControlJump].held(now) || now.Before(n.jumpLatch)
}

// Frame captures all three queries at once.
func (n *Normalizer) Frame(now time.Time) Frame {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Frame{
		Left:  n.keys[ControlLeft].held(now) || n.touchLeft,
		Right: n.keys[ControlRight].held(now) || n.touchRight,
		Jump:  n.jumpLocked(now),
	}
}

// AcceptJump records that a jump was honoured at now. It returns false,
// and records nothing, when the previous jump is still inside the cooldown.
// An accepted jump consumes the pending button press.
func (n *Normalizer) AcceptJump(now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.jumped && now.Sub(n.lastJump) < n.cooldown {
		return false
	}
	n.jumped = true
	n.lastJump = now
	n.jumpLatch = time.Time{}
	n.keys[ControlJump].until = time.Time{}
	return true
}

// Reset releases every source. The jump cooldown is kept.
func (n *Normalizer) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.keys = [4]keyState{}
	n.touchLeft, n.touchRight = false, false
	n.jumpLatch = time.Time{}
	n.swipe = swipeTracker{}
}
