package game

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// Camera maps world pixels to screen cells. The character is drawn at a
// fixed screen x; the world scrolls underneath it.
type Camera struct {
	Scroll float64 // pixels added to world x
	CellW  float64
	CellH  float64
}

// NewCamera follows the character in st.
func NewCamera(st sim.State, cfg config.WorldConfig) Camera {
	return Camera{Scroll: cfg.ScreenX - st.X, CellW: cfg.CellWidth, CellH: cfg.CellHeight}
}

// Project returns the cells covered by a world-space box.
func (c Camera) Project(b core.AABB) core.Rect {
	return b.Translate(c.Scroll, 0).ToCells(c.CellW, c.CellH)
}

// WorldX returns the world x at the left edge of screen column col.
func (c Camera) WorldX(col int) float64 {
	return float64(col)*c.CellW - c.Scroll
}

// View is everything needed to draw one frame.
type View struct {
	World        world.World
	State        sim.State
	Physics      config.PhysicsConfig
	Geometry     config.WorldConfig
	Instructions bool
	Sound        bool
}

// View captures the session for rendering.
func (s *Session) View() View {
	return View{
		World:        s.loop.World(),
		State:        s.loop.Snapshot(),
		Physics:      s.cfg.Physics,
		Geometry:     s.cfg.World,
		Instructions: s.ShowInstructions(),
		Sound:        s.sound,
	}
}

// Render draws v into scr.
func Render(scr *core.Screen, v View) {
	scr.Clear()
	cam := NewCamera(v.State, v.Geometry)

	drawGround(scr, cam, v.World)
	for _, b := range v.World.Boxes {
		drawBox(scr, cam, b, v.State.Broken.Has(b.ID))
	}
	drawCharacter(scr, cam.Project(v.State.Bounds(v.Physics)), v.State.FacingRight)
	drawHUD(scr, v)
	if v.Instructions {
		drawInstructions(scr)
	}
}

// GroundRow returns the first screen row below the ground line.
func GroundRow(ground, cellH float64) int {
	return int(math.Ceil(ground / cellH))
}

func drawGround(scr *core.Screen, cam Camera, w world.World) {
	top := GroundRow(w.GroundLevel, cam.CellH)
	for x := 0; x < scr.Width(); x++ {
		wx := cam.WorldX(x)
		if wx < 0 || wx > w.Width {
			continue
		}
		tile := int(math.Floor(wx / cam.CellW))
		scr.SetColored(x, top, '▀', core.ColorGreen)
		for y := top + 1; y < scr.Height(); y++ {
			r := '▓'
			if (tile+y)%6 == 0 {
				r = '▒'
			}
			scr.SetColored(x, y, r, core.ColorBrown)
		}
	}
}

func drawBox(scr *core.Screen, cam Camera, b world.Box, broken bool) {
	r := cam.Project(b.Bounds)
	if r.Right() < 0 || r.X >= scr.Width() {
		return
	}

	labelColor := core.ColorWhite
	switch {
	case broken:
		scr.DrawRect(r, ' ', core.ColorDefault)
		scr.DrawBox(r, core.BoxLight, core.ColorGray)
		labelColor = core.ColorBrightGreen
	case b.Kind == world.KindBrick:
		scr.DrawRect(r, '▒', core.ColorOrange)
		scr.DrawBox(r, core.BoxLight, core.ColorBrown)
	default:
		scr.DrawRect(r, ' ', core.ColorDefault)
		scr.DrawBox(r, core.BoxHeavy, core.ColorYellow)
		scr.SetColored(r.X+r.W/2, r.Y+r.H/2, '?', core.ColorBrightYellow)
	}

	label := b.Label
	x := r.X + (r.W-utf8.RuneCountInString(label))/2
	scr.DrawTextColored(x, r.Y-1, label, labelColor)
}

func drawCharacter(scr *core.Screen, r core.Rect, facingRight bool) {
	for i := 0; i < r.H; i++ {
		y := r.Y + i
		c := core.ColorBlue
		switch {
		case i == 0:
			c = core.ColorRed
		case i == 1:
			c = core.ColorYellow
		case i == r.H-1:
			c = core.ColorBrown
		}
		scr.DrawHLine(r.X, y, r.W, '█', c)
	}

	if r.H > 1 {
		eye := r.X + 1
		if facingRight {
			eye = r.Right() - 2
		}
		scr.SetColored(eye, r.Y+1, '▪', core.ColorDefault)
	}
}

func drawHUD(scr *core.Screen, v View) {
	var boxes strings.Builder
	for _, id := range world.Order {
		if v.State.Broken.Has(id) {
			boxes.WriteRune('■')
		} else {
			boxes.WriteRune('□')
		}
	}
	scr.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d  %s", v.State.Score, boxes.String()), core.ColorBrightWhite)

	sound := "♪ off"
	if v.Sound {
		sound = "♪ on"
	}
	scr.DrawTextColored(scr.Width()-utf8.RuneCountInString(sound)-1, 0, sound, core.ColorCyan)
}

// InstructionLines is the controls overlay text.
var InstructionLines = []string{
	"Controls",
	"← → or A/D to move",
	"↑, W or Space to jump",
	"Jump into boxes from below to break them!",
	"C chat · M sound · Q quit",
}

func drawInstructions(scr *core.Screen) {
	width := 0
	for _, l := range InstructionLines {
		width = core.Max(width, utf8.RuneCountInString(l))
	}
	r := core.NewRect((scr.Width()-width-4)/2, 2, width+4, len(InstructionLines)+2)
	scr.DrawRect(r, ' ', core.ColorDefault)
	scr.DrawBox(r, core.BoxDouble, core.ColorBrightBlue)
	for i, l := range InstructionLines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		scr.DrawTextCentered(r.Y+1+i, l, c)
	}
}
