package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-portfolio/internal/core"
	"github.com/vovakirdan/tui-portfolio/internal/platform/tui"
)

var (
	flagLogFile     string
	flagSnapshotDir string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Walk through the résumé in this terminal.

Controls:
  ←/→, A/D        - Walk
  ↑, W, Space     - Jump (hit a box from below to open it)
  Esc/Enter       - Close the open section
  C or /          - Ask the assistant
  M               - Toggle sound (terminal bell)
  R               - Back to the start
  Ctrl+Y          - Copy the open section or the contact details
  Ctrl+S          - Save a PNG snapshot
  Q/Ctrl+C        - Quit

Examples:
  portfolio play
  portfolio play --profile ./me.yaml --db ~/.portfolio/runs.db
  portfolio play --log-file /tmp/portfolio.log`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is in use)")
	playCmd.Flags().StringVar(&flagSnapshotDir, "snapshots", "", "Directory for Ctrl+S snapshots (default: ~/.portfolio/snapshots)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	prof := loadProfile()

	// The alternate screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fail("opening log file", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Prefix: "portfolio"})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Server.TickRate,
	}

	store := openStore(cfg, logger)
	runErr := tui.Run(cfg, prof, rc, tui.Options{
		Store:       store,
		Assistant:   newAssistant(cfg, prof, logger),
		Logger:      logger,
		SnapshotDir: flagSnapshotDir,
		Bell:        os.Stdout,
		Clipboard:   true,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game", runErr)
	}
}
