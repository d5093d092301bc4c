package input

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/config"
)

const cooldown = 300 * time.Millisecond

func newTestNormalizer() *Normalizer {
	return NewNormalizer(config.Default().Input, cooldown)
}

func TestControlForKey(t *testing.T) {
	tests := []struct {
		key      string
		expected Control
	}{
		{"left", ControlLeft},
		{"ArrowLeft", ControlLeft},
		{"a", ControlLeft},
		{"A", ControlLeft},
		{"right", ControlRight},
		{"ArrowRight", ControlRight},
		{"d", ControlRight},
		{"D", ControlRight},
		{"up", ControlJump},
		{"ArrowUp", ControlJump},
		{"w", ControlJump},
		{"W", ControlJump},
		{" ", ControlJump},
		{"Space", ControlJump},
		{"q", ControlNone},
		{"", ControlNone},
	}

	for _, tc := range tests {
		if got := ControlForKey(tc.key); got != tc.expected {
			t.Errorf("ControlForKey(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestKeyDownUp(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	if !n.KeyDown("ArrowLeft") {
		t.Fatal("KeyDown(ArrowLeft) should be recognized")
	}
	if n.KeyDown("Enter") {
		t.Error("KeyDown(Enter) should be ignored")
	}
	if !n.Left(now.Add(time.Hour)) {
		t.Error("key-down should stay held without a timeout")
	}

	n.KeyUp("a")
	if n.Left(now) {
		t.Error("KeyUp on an equivalent key should release the control")
	}
}

func TestPressExpires(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)
	hold := config.Default().Input.HoldTimeout()

	n.Press("d", now)
	if !n.Right(now.Add(hold - time.Millisecond)) {
		t.Error("pressed key should be held inside the hold timeout")
	}
	if n.Right(now.Add(hold)) {
		t.Error("pressed key should expire at the hold timeout")
	}

	n.Press("right", now)
	n.Press("left", now.Add(10*time.Millisecond))
	f := n.Frame(now.Add(20 * time.Millisecond))
	if !f.Left || f.Right {
		t.Errorf("Frame() = %+v, expected the newer direction only", f)
	}
}

func TestTouchZones(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	n.SetTouch(ZoneRight, true)
	if !n.Right(now) {
		t.Error("right touch zone should hold right")
	}
	n.SetTouch(ZoneRight, false)
	if n.Right(now) {
		t.Error("released touch zone should not hold right")
	}
}

func TestJumpSourcesEquivalent(t *testing.T) {
	now := time.Unix(100, 0)

	sources := map[string]func(*Normalizer){
		"key down": func(n *Normalizer) { n.KeyDown("ArrowUp") },
		"press":    func(n *Normalizer) { n.Press(" ", now) },
		"button":   func(n *Normalizer) { n.PressJump(now) },
	}

	for name, apply := range sources {
		n := newTestNormalizer()
		apply(n)
		if !n.Jump(now) {
			t.Errorf("%s: Jump() = false, expected true", name)
		}
	}
}

func TestAcceptJumpCooldown(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	n.KeyDown("w")
	n.PressJump(now)
	if !n.AcceptJump(now) {
		t.Fatal("first jump should be accepted")
	}

	// Held key plus a second source inside the cooldown.
	n.PressJump(now.Add(50 * time.Millisecond))
	if n.Jump(now.Add(100 * time.Millisecond)) {
		t.Error("Jump() inside the cooldown should be false")
	}
	if n.AcceptJump(now.Add(299 * time.Millisecond)) {
		t.Error("AcceptJump() inside the cooldown should be refused")
	}

	if !n.Jump(now.Add(cooldown)) {
		t.Error("held jump key should request again once the cooldown elapsed")
	}
	if !n.AcceptJump(now.Add(cooldown)) {
		t.Error("AcceptJump() at the cooldown boundary should succeed")
	}
}

func TestAcceptJumpConsumesButton(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	n.PressJump(now)
	n.AcceptJump(now)
	if n.Jump(now.Add(cooldown + time.Millisecond)) {
		t.Error("button press should be consumed by the accepted jump")
	}
}

func TestReset(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	n.KeyDown("left")
	n.SetTouch(ZoneRight, true)
	n.PressJump(now)
	n.Reset()

	if f := n.Frame(now); f != (Frame{}) {
		t.Errorf("Frame() after Reset = %+v, expected empty", f)
	}
}

func TestConcurrentUse(t *testing.T) {
	n := newTestNormalizer()
	now := time.Unix(100, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				n.Press("left", now)
				n.SetTouch(ZoneRight, j%2 == 0)
				_ = n.Frame(now)
				n.AcceptJump(now.Add(time.Duration(j) * time.Second))
			}
		}(i)
	}
	wg.Wait()
}
