package web

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-portfolio/internal/assets"
	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/export"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/sim"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// Viewport limits accepted from query strings.
const (
	defaultViewportW = 1920
	defaultViewportH = 1080
	minViewportW     = 320
	maxViewportW     = 7680
	minViewportH     = 240
	maxViewportH     = 4320

	// The world image is scaled down to fit these.
	maxPNGWidth  = 4096
	maxPNGHeight = 2048

	// maxChatHistory bounds how much of a browser conversation is forwarded.
	maxChatHistory = 40
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// parseIntParam reads an integer query parameter, falling back to
// defaultVal when it is missing or malformed.
func parseIntParam(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// clamp limits a value to a range
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// viewport reads ?w= and ?h= in pixels.
func viewport(c *gin.Context) (int, int) {
	w := clamp(parseIntParam(c, "w", defaultViewportW), minViewportW, maxViewportW)
	h := clamp(parseIntParam(c, "h", defaultViewportH), minViewportH, maxViewportH)
	return w, h
}

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.profile)
}

func (s *Server) handleGreeting(c *gin.Context) {
	c.JSON(http.StatusOK, chat.Message{
		Role:    chat.RoleAssistant,
		Content: profile.Greeting(s.profile, s.cfg.Chat.AssistantName),
	})
}

func (s *Server) handleSection(c *gin.Context) {
	id, ok := world.ParseBoxID(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown section")
		return
	}
	sec, ok := s.profile.Section(id)
	if !ok {
		respondError(c, http.StatusNotFound, "unknown section")
		return
	}
	c.JSON(http.StatusOK, newSectionView(sec))
}

func (s *Server) handleWorld(c *gin.Context) {
	w, h := viewport(c)
	c.JSON(http.StatusOK, world.Build(w, h, s.cfg.World))
}

// handleWorldPNG renders the world with the character at ?x= (default 0)
// and the boxes in ?broken= (comma separated) shown as broken. Large
// viewports are scaled down to maxPNGWidth x maxPNGHeight.
func (s *Server) handleWorldPNG(c *gin.Context) {
	w, h := viewport(c)
	wld := world.Build(w, h, s.cfg.World)
	st := sim.NewState(wld, s.cfg.Physics)
	st.X = characterX(c.Query("x"), wld, s.cfg.Physics)
	for _, name := range splitList(c.Query("broken")) {
		if id, ok := world.ParseBoxID(name); ok {
			st.Broken = st.Broken.Add(id)
			st.Score++
		}
	}

	var buf bytes.Buffer
	opts := export.Options{Scale: export.FitScale(wld, maxPNGWidth, maxPNGHeight)}
	if err := export.WritePNG(&buf, wld, st, s.cfg.Physics, opts); err != nil {
		s.logger.Warn("png export failed", "error", err)
		respondError(c, http.StatusInternalServerError, "could not render world")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// characterX parses a character position and clamps it to the world.
// Missing, malformed and non-finite values give 0.
func characterX(raw string, wld world.World, phys config.PhysicsConfig) float64 {
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return max(0, min(x, wld.Width-phys.CharacterWidth))
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' })
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		respondError(c, http.StatusBadRequest, "messages must not be empty")
		return
	}
	history := req.Messages
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	reply := s.assistant.Reply(c.Request.Context(), history)
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (s *Server) handleSound(c *gin.Context) {
	if s.assets == nil {
		respondError(c, http.StatusNotFound, "sound not available")
		return
	}
	data, file, err := s.assets.Read(c.Param("name"))
	if errors.Is(err, assets.ErrNotFound) {
		respondError(c, http.StatusNotFound, "sound not available")
		return
	}
	if err != nil {
		s.logger.Warn("cannot read sound", "name", c.Param("name"), "error", err)
		respondError(c, http.StatusInternalServerError, "cannot read sound")
		return
	}
	contentType, ok := soundTypes[path.Ext(file)]
	if !ok {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

var soundTypes = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".ogg": "audio/ogg",
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusNotFound, "run history is disabled")
		return
	}
	limit := clamp(parseIntParam(c, "limit", 20), 1, 100)
	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		s.logger.Warn("cannot list runs", "error", err)
		respondError(c, http.StatusInternalServerError, "cannot list runs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleRunStats(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusNotFound, "run history is disabled")
		return
	}
	stats, err := s.store.Stats()
	if err != nil {
		s.logger.Warn("cannot read run stats", "error", err)
		respondError(c, http.StatusInternalServerError, "cannot read run stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
