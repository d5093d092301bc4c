package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/export"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

var (
	flagWorldW     int
	flagWorldH     int
	flagWorldPNG   string
	flagWorldJSON  bool
	flagWorldX     float64
	flagWorldBreak []string
	flagWorldScale float64
)

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Print or render the world layout",
	Long: `Build the world for a viewport in pixels and print its geometry.

Viewports of 768 pixels or narrower use the narrow layout: boxes spread
further apart and sit lower.

Examples:
  portfolio world
  portfolio world --width 400 --height 800
  portfolio world --json
  portfolio world --png world.png --x 1100 --broken about,education`,
	Run: runWorld,
}

func init() {
	worldCmd.Flags().IntVar(&flagWorldW, "width", 1920, "Viewport width in pixels")
	worldCmd.Flags().IntVar(&flagWorldH, "height", 1080, "Viewport height in pixels")
	worldCmd.Flags().StringVar(&flagWorldPNG, "png", "", "Write a PNG rendering to this path")
	worldCmd.Flags().BoolVar(&flagWorldJSON, "json", false, "Print the world as JSON")
	worldCmd.Flags().Float64Var(&flagWorldX, "x", 0, "Character x position for --png")
	worldCmd.Flags().StringSliceVar(&flagWorldBreak, "broken", nil, "Boxes drawn as broken for --png")
	worldCmd.Flags().Float64Var(&flagWorldScale, "scale", 1, "Image scale for --png")
}

func runWorld(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagWorldW <= 0 || flagWorldH <= 0 {
		fail("building world", fmt.Errorf("viewport must be positive, got %dx%d", flagWorldW, flagWorldH))
	}
	w := world.Build(flagWorldW, flagWorldH, cfg.World)

	if flagWorldPNG != "" {
		st := sim.NewState(w, cfg.Physics)
		st.X = max(0, min(flagWorldX, w.Width-cfg.Physics.CharacterWidth))
		for _, name := range flagWorldBreak {
			id, ok := world.ParseBoxID(strings.TrimSpace(name))
			if !ok {
				fail("parsing --broken", fmt.Errorf("unknown box %q", name))
			}
			st.Broken = st.Broken.Add(id)
			st.Score++
		}
		if err := export.SavePNG(flagWorldPNG, w, st, cfg.Physics, export.Options{Scale: flagWorldScale}); err != nil {
			fail("writing PNG", err)
		}
		fmt.Printf("Wrote %s\n", flagWorldPNG)
		return
	}

	if flagWorldJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(w); err != nil {
			fail("encoding world", err)
		}
		return
	}

	layout := "wide"
	if w.Narrow {
		layout = "narrow"
	}
	fmt.Printf("World for %dx%d (%s layout)\n", w.ViewportW, w.ViewportH, layout)
	fmt.Printf("Ground: %.1f  Width: %.1f\n", w.GroundLevel, w.Width)
	fmt.Println()

	fmt.Printf("  %-10s  %-8s  %-8s  %-8s  %s\n", "Box", "Kind", "Left", "Top", "Size")
	fmt.Printf("  %-10s  %-8s  %-8s  %-8s  %s\n", "---", "----", "----", "---", "----")
	for _, b := range w.Boxes {
		fmt.Printf("  %-10s  %-8s  %-8.1f  %-8.1f  %.0fx%.0f\n",
			b.ID, b.Kind, b.Bounds.X, b.Bounds.Y, b.Bounds.W, b.Bounds.H)
	}
}
