package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/markup"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "SCORE", core.ColorYellow)
	s.DrawTextColored(6, 0, "3", core.ColorDefault)
	s.DrawTextColored(0, 1, "▀▀▀▀", core.ColorGreen)

	out := RenderScreen(s)
	if !strings.Contains(out, "SCORE") || !strings.Contains(out, "▀▀▀▀") {
		t.Errorf("RenderScreen() = %q, expected cell text", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d line breaks, expected 1", got)
	}
}

func TestRenderMarkup(t *testing.T) {
	out := RenderMarkup(markup.Render("**Go** and `sql`\nsee github.com/alex"))
	for _, want := range []string{"Go", "sql", "github.com/alex"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderMarkup() = %q, expected it to contain %q", out, want)
		}
	}
	if strings.Contains(out, "**") || strings.Contains(out, "`") {
		t.Errorf("RenderMarkup() = %q, markers should be stripped", out)
	}
}
