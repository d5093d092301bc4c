package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets visitors play through the résumé.

Each SSH connection gets its own game and its own assistant conversation.
Runs are recorded per server when --db is set.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.portfolio/host_key

Examples:
  portfolio serve                           # Listen on the config ssh_address
  portfolio serve --ssh :2222               # Listen on port 2222
  portfolio serve --host-key ./my_host_key  # Use specific host key
  portfolio serve --db ./runs.db            # Record runs

Visitors connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: config ssh_address)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (0 = config value)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	prof := loadProfile()
	logger := newLogger("portfolio-ssh")

	sshCfg := tui.SSHServerConfigFrom(cfg)
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(sshCfg, cfg, prof, logger)
	if err != nil {
		fail("creating server", err)
	}

	fmt.Printf("Starting portfolio SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("serving", err)
	}
}
