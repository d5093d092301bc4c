package web

import (
	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/game"
	"github.com/vovakirdan/tui-portfolio/internal/markup"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// Client message types on /ws/play.
const (
	MsgKey        = "key"        // Key, Down
	MsgTouchStart = "touchstart" // X, Y
	MsgTouchEnd   = "touchend"   // X, Y
	MsgResize     = "resize"     // Width, Height
	MsgClose      = "close"      // close the open panel
	MsgRestart    = "restart"
	MsgSound      = "sound" // toggle
)

// Server message types on /ws/play.
const (
	MsgWorld = "world"
	MsgState = "state"
)

// ClientMessage is one input event from the browser.
type ClientMessage struct {
	Type   string  `json:"type" jsonschema:"enum=key,enum=touchstart,enum=touchend,enum=resize,enum=close,enum=restart,enum=sound"`
	Key    string  `json:"key,omitempty"`
	Down   bool    `json:"down,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// WorldMessage is sent on connect and after every resize.
type WorldMessage struct {
	Type  string      `json:"type"`
	World world.World `json:"world"`
}

// StateMessage is sent every frame.
type StateMessage struct {
	Type         string       `json:"type"`
	State        sim.State    `json:"state"`
	Scroll       float64      `json:"scroll"`
	Events       []sim.Event  `json:"events,omitempty"`
	Cues         []game.Cue   `json:"cues,omitempty"`
	Panel        *SectionView `json:"panel,omitempty"`
	Instructions bool         `json:"instructions"`
	Sound        bool         `json:"sound"`
}

// SectionView is a section with its body already split into fragments.
type SectionView struct {
	profile.Section
	Lines []markup.Line `json:"lines"`
}

func newSectionView(sec profile.Section) *SectionView {
	return &SectionView{Section: sec, Lines: markup.Render(sec.Body)}
}

// ChatRequest is the body of POST /api/chat. The browser keeps the
// conversation and sends all of it.
type ChatRequest struct {
	Messages []chat.Message `json:"messages" binding:"required"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
