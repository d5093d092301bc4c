// Package game ties the simulation to a player session: it gates movement
// while a content panel is open, turns events into sound cues and keeps
// per-run statistics. Presentation layers drive a Session from one goroutine.
package game

import (
	"time"

	"github.com/vovakirdan/tui-portfolio/internal/assets"
	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/input"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/storage"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// StartZone is how close to the world start the character must be for the
// controls overlay to come back.
const StartZone = 200.0

// Cue asks the presentation layer to play a sound.
type Cue struct {
	Sound string `json:"sound"`
}

// Stats summarizes a run.
type Stats struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Jumps     int           `json:"jumps"`
	Broken    []world.BoxID `json:"broken"`
	Score     int           `json:"score"`
	MaxX      float64       `json:"max_x"`
}

// Session is one player's game.
type Session struct {
	cfg     config.Config
	profile profile.Profile
	loop    *sim.Loop
	input   *input.Normalizer

	sound  bool
	moving bool
	stats  Stats
	now    time.Time
}

// NewSession creates a session for a viewport of w x h pixels.
func NewSession(cfg config.Config, prof profile.Profile, w, h int, now time.Time) *Session {
	return &Session{
		cfg:     cfg,
		profile: prof,
		loop:    sim.NewLoop(w, h, cfg),
		input:   input.NewNormalizer(cfg.Input, cfg.Physics.JumpCooldown()),
		sound:   true,
		stats:   Stats{StartedAt: now},
		now:     now,
	}
}

// Input returns the normalizer event handlers write to.
func (s *Session) Input() *input.Normalizer {
	return s.input
}

// Resize rebuilds the world for a new viewport in pixels.
func (s *Session) Resize(w, h int) bool {
	return s.loop.Resize(w, h)
}

// Tick advances one frame at wall time now and returns the frame's events
// and sound cues. Movement input is ignored while a panel is open.
func (s *Session) Tick(now time.Time) ([]sim.Event, []Cue) {
	s.now = now
	frame := s.input.Frame(now)
	if s.PanelOpen() {
		frame = input.Frame{}
	}

	events := s.loop.Advance(now, frame)
	var cues []Cue
	for _, e := range events {
		switch e.Kind {
		case sim.EventJumped:
			s.input.AcceptJump(now)
			s.stats.Jumps++
		case sim.EventBoxBroken:
			s.stats.Broken = append(s.stats.Broken, e.Box)
			if s.sound {
				cues = append(cues, Cue{Sound: assets.SoundBreak})
			}
		}
	}

	st := s.loop.Snapshot()
	if st.X > s.stats.MaxX {
		s.stats.MaxX = st.X
	}
	moving := st.VX != 0
	if moving && !s.moving && s.sound {
		cues = append(cues, Cue{Sound: assets.SoundSong})
	}
	s.moving = moving
	return events, cues
}

// State returns a copy of the simulation state.
func (s *Session) State() sim.State {
	return s.loop.Snapshot()
}

// World returns the current world.
func (s *Session) World() world.World {
	return s.loop.World()
}

// Config returns the session configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Profile returns the résumé shown in panels.
func (s *Session) Profile() profile.Profile {
	return s.profile
}

// PanelOpen reports whether a content panel is displayed.
func (s *Session) PanelOpen() bool {
	return s.loop.Snapshot().Active != world.BoxNone
}

// Panel returns the section of the active box.
func (s *Session) Panel() (profile.Section, bool) {
	id := s.loop.Snapshot().Active
	if id == world.BoxNone {
		return profile.Section{}, false
	}
	return s.profile.Section(id)
}

// ClosePanel dismisses the open panel. The box stays broken until the
// character walks away from it.
func (s *Session) ClosePanel() {
	s.loop.CloseActive()
	s.input.Reset()
}

// ShowInstructions reports whether the controls overlay is visible: no
// panel is open and either the first box is intact or the character is
// back near the start.
func (s *Session) ShowInstructions() bool {
	st := s.loop.Snapshot()
	if st.Active != world.BoxNone {
		return false
	}
	return !st.Broken.Has(world.BoxAbout) || st.X <= StartZone
}

// SoundEnabled reports whether cues are produced.
func (s *Session) SoundEnabled() bool {
	return s.sound
}

// ToggleSound flips the sound setting and returns the new value.
func (s *Session) ToggleSound() bool {
	s.sound = !s.sound
	return s.sound
}

// Restart puts the character back at the start. Score and stats carry on.
func (s *Session) Restart() {
	s.loop.Reset()
	s.input.Reset()
}

// Stats returns the run summary so far.
func (s *Session) Stats() Stats {
	st := s.stats
	st.Broken = append([]world.BoxID(nil), s.stats.Broken...)
	st.Score = s.loop.Snapshot().Score
	st.Duration = s.now.Sub(s.stats.StartedAt)
	return st
}

// Record converts the run summary into a history row.
func (st Stats) Record(session, source string) storage.Run {
	return storage.Run{
		Session:  session,
		Source:   source,
		Score:    st.Score,
		Boxes:    st.Broken,
		Jumps:    st.Jumps,
		MaxX:     st.MaxX,
		Duration: st.Duration,
	}
}
