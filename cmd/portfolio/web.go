package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/assets"
	"github.com/vovakirdan/tui-portfolio/internal/platform/web"
)

var (
	flagHTTPAddr  string
	flagAssetsDir string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API and websocket play server",
	Long: `Serve the portfolio to browsers.

Routes:
  GET  /api/world?w=&h=        World layout for a viewport in pixels
  GET  /api/world.png          Rendered world (?x=, ?broken=about,skills)
  GET  /api/sections/:id       Section text and styled fragments
  GET  /api/profile            The résumé
  GET  /api/greeting           The assistant's opening message
  POST /api/chat               {"messages": [...]} -> {"reply": "..."}
  GET  /api/runs, /runs/stats  Run history (with --db)
  GET  /assets/sound/:name     break or song, first of .mp3 .wav .ogg
  GET  /ws/play?w=&h=          One game per connection

Examples:
  portfolio web
  portfolio web --http :9000 --assets ./assets/sounds`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP address (default: config http_address)")
	webCmd.Flags().StringVar(&flagAssetsDir, "assets", "", "Sound directory (default: config assets_dir)")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	prof := loadProfile()
	logger := newLogger("portfolio-web")

	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddress = flagHTTPAddr
	}
	if flagAssetsDir != "" {
		cfg.Server.AssetsDir = flagAssetsDir
	}

	var resolver *assets.Resolver
	if info, err := os.Stat(cfg.Server.AssetsDir); err == nil && info.IsDir() {
		resolver = assets.NewDirResolver(cfg.Server.AssetsDir)
	} else {
		logger.Warn("sound directory not found, serving no sounds", "dir", cfg.Server.AssetsDir)
	}

	server := web.NewServer(cfg, prof, web.Options{
		Assets: resolver,
		Store:  openStore(cfg, logger),
		Logger: logger,
	})

	fmt.Printf("Starting portfolio web server on %s\n", cfg.Server.HTTPAddress)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("serving", err)
	}
}
