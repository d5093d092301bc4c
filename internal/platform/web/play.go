package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/game"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

var errUnknownMessage = errors.New("web: unknown message type")

// jsonWriter is the sending half of a websocket connection.
type jsonWriter interface {
	WriteJSON(v any) error
}

// playSession runs one browser's game. Only the run goroutine touches the
// session; the read loop hands messages over a channel.
type playSession struct {
	id      string
	session *game.Session
	out     jsonWriter
	w, h    int
	active  world.BoxID
}

func newPlaySession(id string, cfg config.Config, prof profile.Profile, w, h int, out jsonWriter, now time.Time) *playSession {
	return &playSession{
		id:      id,
		session: game.NewSession(cfg, prof, w, h, now),
		out:     out,
		w:       w,
		h:       h,
	}
}

func (p *playSession) sendWorld() error {
	return p.out.WriteJSON(WorldMessage{Type: MsgWorld, World: p.session.World()})
}

// apply handles one client message.
func (p *playSession) apply(msg ClientMessage, now time.Time) error {
	in := p.session.Input()
	switch msg.Type {
	case MsgKey:
		if msg.Down {
			in.KeyDown(msg.Key)
		} else {
			in.KeyUp(msg.Key)
		}
	case MsgTouchStart:
		in.TouchStart(msg.X, msg.Y, float64(p.w), float64(p.h), now)
	case MsgTouchEnd:
		in.TouchEnd(msg.X, msg.Y, now)
	case MsgResize:
		if msg.Width <= 0 || msg.Height <= 0 {
			return nil
		}
		p.w = clamp(msg.Width, minViewportW, maxViewportW)
		p.h = clamp(msg.Height, minViewportH, maxViewportH)
		p.session.Resize(p.w, p.h)
		return p.sendWorld()
	case MsgClose:
		p.session.ClosePanel()
	case MsgRestart:
		p.session.Restart()
	case MsgSound:
		p.session.ToggleSound()
	default:
		return fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
	}
	return nil
}

// frame advances the game and sends the new state. The panel section is
// only included on the frame it opens.
func (p *playSession) frame(now time.Time) error {
	events, cues := p.session.Tick(now)
	v := p.session.View()

	msg := StateMessage{
		Type:         MsgState,
		State:        v.State,
		Scroll:       game.NewCamera(v.State, v.Geometry).Scroll,
		Events:       events,
		Cues:         cues,
		Instructions: v.Instructions,
		Sound:        v.Sound,
	}
	if v.State.Active != p.active {
		p.active = v.State.Active
		if sec, ok := p.session.Panel(); ok {
			msg.Panel = newSectionView(sec)
		}
	}
	return p.out.WriteJSON(msg)
}

// run drives the session until the connection closes or ctx ends.
func (p *playSession) run(ctx context.Context, conn *websocket.Conn, tickRate int, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan ClientMessage, 64)
	go readMessages(ctx, cancel, conn, msgs, logger)

	if err := p.sendWorld(); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgs:
			if err := p.apply(msg, time.Now()); err != nil {
				if errors.Is(err, errUnknownMessage) {
					logger.Debug("discarding message", "error", err)
					continue
				}
				return err
			}
		case now := <-ticker.C:
			if err := p.frame(now); err != nil {
				return err
			}
		}
	}
}

// readMessages forwards client messages until the connection fails.
// Malformed messages are dropped.
func readMessages(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- ClientMessage, logger *log.Logger) {
	defer cancel()
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("connection closed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			logger.Debug("discarding malformed message", "error", err)
			continue
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handlePlay(c *gin.Context) {
	w, h := viewport(c)
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id := fmt.Sprintf("web-%d", time.Now().UnixNano())
	logger := s.logger.With("session", id)
	logger.Info("play session started", "remote", c.Request.RemoteAddr)

	ps := newPlaySession(id, s.cfg, s.profile, w, h, conn, time.Now())
	tickRate := s.cfg.Server.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	if err := ps.run(c.Request.Context(), conn, tickRate, logger); err != nil {
		logger.Debug("play session failed", "error", err)
	}

	s.saveRun(ps)
	logger.Info("play session ended", "score", ps.session.State().Score)
}

func (s *Server) saveRun(ps *playSession) {
	if s.store == nil {
		return
	}
	stats := ps.session.Stats()
	if stats.Score == 0 {
		return
	}
	if _, err := s.store.SaveRun(stats.Record(ps.id, "web")); err != nil {
		s.logger.Warn("could not save run", "error", err)
	}
}
