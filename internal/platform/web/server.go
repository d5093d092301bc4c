// Package web serves the portfolio to browsers: a JSON API for the world,
// sections and assistant, sound assets, and a websocket that runs one game
// session per connection.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-portfolio/internal/assets"
	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/storage"
)

// Options wires optional services into a Server.
type Options struct {
	Assistant *chat.Assistant  // nil builds one from the chat config
	Assets    *assets.Resolver // nil serves no sounds
	Store     *storage.Store   // nil disables run history
	Logger    *log.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg       config.Config
	profile   profile.Profile
	assistant *chat.Assistant
	assets    *assets.Resolver
	store     *storage.Store
	logger    *log.Logger
	upgrader  websocket.Upgrader
	engine    *gin.Engine
	http      *http.Server
}

// NewServer creates the server and registers its routes.
func NewServer(cfg config.Config, prof profile.Profile, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "portfolio-web",
		})
	}

	assistant := opts.Assistant
	if assistant == nil {
		name := cfg.Chat.AssistantName
		// The browser owns the conversation, so the shared assistant only
		// supplies the prompt and the client.
		assistant = chat.NewAssistant(chat.NewClient(cfg.Chat), profile.SystemPrompt(prof, name), "").
			WithLogger(logger)
	}

	s := &Server{
		cfg:       cfg,
		profile:   prof,
		assistant: assistant,
		assets:    opts.Assets,
		store:     opts.Store,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.loggingMiddleware)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/profile", s.handleProfile)
	api.GET("/greeting", s.handleGreeting)
	api.GET("/sections/:id", s.handleSection)
	api.GET("/world", s.handleWorld)
	api.GET("/world.png", s.handleWorldPNG)
	api.POST("/chat", s.handleChat)
	api.GET("/runs", s.handleRuns)
	api.GET("/runs/stats", s.handleRunStats)

	r.GET("/assets/sound/:name", s.handleSound)
	r.GET("/ws/play", s.handlePlay)
	return r
}

// loggingMiddleware logs each request after it completes.
func (s *Server) loggingMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:              s.cfg.Server.HTTPAddress,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting HTTP server", "address", s.http.Addr)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Open websocket sessions end when
// their connections close.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.store != nil {
		s.store.Close()
	}
	return err
}
