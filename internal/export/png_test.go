package export

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

func testScene() (world.World, sim.State, config.PhysicsConfig) {
	cfg := config.Default()
	w := world.Build(1280, 720, cfg.World)
	st := sim.NewState(w, cfg.Physics)
	st.Broken = st.Broken.Add(world.BoxAbout)
	return w, st, cfg.Physics
}

func TestRenderSize(t *testing.T) {
	w, st, phys := testScene()
	img, err := Render(w, st, phys, Options{Scale: 0.5})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != int(w.Width*0.5) || b.Dy() != 360 {
		t.Errorf("image size = %dx%d, expected %dx360", b.Dx(), b.Dy(), int(w.Width*0.5))
	}

	// Top-right corner is sky.
	r, g, bl, _ := img.At(b.Dx()-2, 2).RGBA()
	sr, sg, sb, _ := color.Color(skyColor).RGBA()
	if r != sr || g != sg || bl != sb {
		t.Errorf("corner pixel = %v/%v/%v, expected sky", r, g, bl)
	}
}

func TestWritePNG(t *testing.T) {
	w, st, phys := testScene()
	var buf bytes.Buffer
	if err := WritePNG(&buf, w, st, phys, Options{Scale: 0.25}); err != nil {
		t.Fatalf("WritePNG() failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	w, st, phys := testScene()
	path := filepath.Join(t.TempDir(), "world.png")
	if err := SavePNG(path, w, st, phys, Options{}); err != nil {
		t.Fatalf("SavePNG() failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("PNG file missing or empty: %v", err)
	}
}

func TestRenderEmptyWorld(t *testing.T) {
	if _, err := Render(world.World{}, sim.State{}, config.Default().Physics, Options{}); err == nil {
		t.Error("Render() of an empty world should fail")
	}
}

func TestFitScale(t *testing.T) {
	cfg := config.Default()
	small := world.Build(800, 600, cfg.World)
	huge := world.Build(7680, 4320, cfg.World)

	tests := []struct {
		name       string
		w          world.World
		maxW, maxH int
	}{
		{"fits already", small, 4096, 2048},
		{"too wide and tall", huge, 4096, 2048},
		{"height bound", huge, 100000, 1000},
		{"no limits", small, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scale := FitScale(tc.w, tc.maxW, tc.maxH)
			if scale <= 0 || scale > 1 {
				t.Fatalf("FitScale() = %v, expected (0, 1]", scale)
			}
			if tc.maxW > 0 && int(tc.w.Width*scale) > tc.maxW {
				t.Errorf("width %d exceeds %d", int(tc.w.Width*scale), tc.maxW)
			}
			if tc.maxH > 0 && int(float64(tc.w.ViewportH)*scale) > tc.maxH {
				t.Errorf("height %d exceeds %d", int(float64(tc.w.ViewportH)*scale), tc.maxH)
			}
		})
	}

	if got := FitScale(small, 4096, 2048); got != 1 {
		t.Errorf("FitScale(small) = %v, expected 1", got)
	}
}
