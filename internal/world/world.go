// Package world derives the static playable world from the viewport size:
// ground level, world width and the ordered list of boxes.
package world

import (
	"math"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/core"
)

// Box is an interactive obstacle in world space.
type Box struct {
	ID     BoxID     `json:"id"`
	Bounds core.AABB `json:"bounds"`
	Label  string    `json:"label"`
	Kind   Kind      `json:"kind"`
}

// World is the geometry for one viewport size. It is a value: rebuilding
// for a new viewport never mutates a World already handed out.
type World struct {
	ViewportW   int     `json:"viewport_w"`
	ViewportH   int     `json:"viewport_h"`
	Narrow      bool    `json:"narrow"`
	GroundLevel float64 `json:"ground_level"`
	Width       float64 `json:"width"`
	Boxes       []Box   `json:"boxes"`
}

// Build lays out the world for a viewport of w x h pixels.
func Build(w, h int, cfg config.WorldConfig) World {
	vw, vh := float64(w), float64(h)
	narrow := vw <= cfg.NarrowWidth

	extra := 0.0
	questionLift, brickLift := cfg.QuestionLift, cfg.BrickLift
	if narrow {
		extra = vw * cfg.NarrowSpacing
		questionLift, brickLift = cfg.QuestionLiftNarrow, cfg.BrickLiftNarrow
	}

	ground := math.Floor(vh * cfg.GroundFraction)

	boxes := make([]Box, 0, len(Order))
	for i, id := range Order {
		if i >= len(cfg.Strides) {
			break
		}
		lift := questionLift
		if id.Kind() == KindBrick {
			lift = brickLift
		}
		left := vw*cfg.Strides[i] + extra*float64(i)
		boxes = append(boxes, Box{
			ID:     id,
			Bounds: core.NewAABB(left, ground-lift, cfg.BoxSize, cfg.BoxSize),
			Label:  id.Label(),
			Kind:   id.Kind(),
		})
	}

	width := cfg.EndMargin
	if n := len(boxes); n > 0 {
		width = boxes[n-1].Bounds.Right() + cfg.EndMargin
	}

	return World{
		ViewportW:   w,
		ViewportH:   h,
		Narrow:      narrow,
		GroundLevel: ground,
		Width:       width,
		Boxes:       boxes,
	}
}

// Box returns the box with the given id.
func (w World) Box(id BoxID) (Box, bool) {
	for _, b := range w.Boxes {
		if b.ID == id {
			return b, true
		}
	}
	return Box{}, false
}

// SameViewport reports whether the world was built for a w x h viewport.
func (w World) SameViewport(width, height int) bool {
	return w.ViewportW == width && w.ViewportH == height
}
