// Package export draws the whole world, not just the visible part, into a
// PNG image.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

var (
	skyColor      = color.RGBA{R: 0x5c, G: 0x94, B: 0xfc, A: 0xff}
	grassColor    = color.RGBA{R: 0x3c, G: 0xb0, B: 0x3c, A: 0xff}
	dirtColor     = color.RGBA{R: 0xa0, G: 0x5a, B: 0x2c, A: 0xff}
	questionColor = color.RGBA{R: 0xf8, G: 0xb8, B: 0x00, A: 0xff}
	brickColor    = color.RGBA{R: 0xc8, G: 0x4c, B: 0x0c, A: 0xff}
	brokenColor   = color.RGBA{R: 0x88, G: 0x70, B: 0x50, A: 0xff}
	capColor      = color.RGBA{R: 0xe0, G: 0x20, B: 0x20, A: 0xff}
	skinColor     = color.RGBA{R: 0xfc, G: 0xc8, B: 0x90, A: 0xff}
	overallColor  = color.RGBA{R: 0x20, G: 0x40, B: 0xc0, A: 0xff}
	bootColor     = color.RGBA{R: 0x60, G: 0x30, B: 0x10, A: 0xff}
)

// Options controls the image.
type Options struct {
	// Scale multiplies world pixels; 0 means 1.
	Scale float64
	// FontSize is in points at scale 1; 0 means 12.
	FontSize float64
}

// FitScale returns the largest scale, at most 1, at which the image of w is
// no wider than maxW and no taller than maxH. Non-positive limits are ignored.
func FitScale(w world.World, maxW, maxH int) float64 {
	scale := 1.0
	if maxW > 0 && w.Width > float64(maxW) {
		scale = min(scale, float64(maxW)/w.Width)
	}
	if vh := float64(w.ViewportH); maxH > 0 && vh > float64(maxH) {
		scale = min(scale, float64(maxH)/vh)
	}
	return scale
}

// Render draws the world and the character in st.
func Render(w world.World, st sim.State, phys config.PhysicsConfig, opts Options) (image.Image, error) {
	dc, err := draw(w, st, phys, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders into out as PNG.
func WritePNG(out io.Writer, w world.World, st sim.State, phys config.PhysicsConfig, opts Options) error {
	dc, err := draw(w, st, phys, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(out); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// SavePNG renders into a file.
func SavePNG(path string, w world.World, st sim.State, phys config.PhysicsConfig, opts Options) error {
	dc, err := draw(w, st, phys, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func draw(w world.World, st sim.State, phys config.PhysicsConfig, opts Options) (*gg.Context, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 12
	}

	width := int(w.Width * scale)
	height := int(float64(w.ViewportH) * scale)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: empty world %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(skyColor)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize * scale * 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	dc.Scale(scale, scale)

	ground := w.GroundLevel
	dc.SetColor(dirtColor)
	dc.DrawRectangle(0, ground, w.Width, float64(w.ViewportH)-ground)
	dc.Fill()
	dc.SetColor(grassColor)
	dc.DrawRectangle(0, ground, w.Width, 12)
	dc.Fill()

	for _, b := range w.Boxes {
		drawBox(dc, b, st.Broken.Has(b.ID), scale)
	}
	drawCharacter(dc, st, phys)

	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("SCORE %d", st.Score), 16, 16+fontSize*2)
	return dc, nil
}

func drawBox(dc *gg.Context, b world.Box, broken bool, scale float64) {
	r := b.Bounds
	fill := questionColor
	switch {
	case broken:
		fill = brokenColor
	case b.Kind == world.KindBrick:
		fill = brickColor
	}

	dc.SetColor(fill)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()

	dc.SetLineWidth(3 / scale)
	dc.SetColor(color.Black)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()

	if b.Kind == world.KindBrick && !broken {
		dc.SetLineWidth(1.5 / scale)
		for y := r.Y + r.H/4; y < r.Bottom(); y += r.H / 4 {
			dc.DrawLine(r.X, y, r.Right(), y)
		}
		dc.Stroke()
	}
	if b.Kind == world.KindQuestion && !broken {
		dc.DrawStringAnchored("?", r.X+r.W/2, r.Y+r.H/2, 0.5, 0.5)
	}

	dc.SetColor(color.White)
	dc.DrawStringAnchored(b.Label, r.X+r.W/2, r.Y-12, 0.5, 0)
}

func drawCharacter(dc *gg.Context, st sim.State, phys config.PhysicsConfig) {
	r := st.Bounds(phys)
	band := r.H / 6

	dc.SetColor(capColor)
	dc.DrawRectangle(r.X, r.Y, r.W, band)
	dc.Fill()
	dc.SetColor(skinColor)
	dc.DrawRectangle(r.X+r.W/8, r.Y+band, r.W*3/4, band*1.5)
	dc.Fill()
	dc.SetColor(overallColor)
	dc.DrawRectangle(r.X, r.Y+band*2.5, r.W, band*2.5)
	dc.Fill()
	dc.SetColor(bootColor)
	dc.DrawRectangle(r.X, r.Bottom()-band, r.W, band)
	dc.Fill()

	eyeX := r.X + r.W*0.35
	if st.FacingRight {
		eyeX = r.X + r.W*0.65
	}
	dc.SetColor(color.Black)
	dc.DrawCircle(eyeX, r.Y+band*1.7, r.W/16)
	dc.Fill()
}
