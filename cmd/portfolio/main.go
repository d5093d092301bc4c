// portfolio is a side-scrolling résumé: walk right, jump into boxes and
// read the sections they reveal, or ask the assistant about them.
//
// Usage:
//
//	portfolio play            - Play in this terminal
//	portfolio serve           - Start SSH server for remote play
//	portfolio web             - Start the HTTP API and websocket play server
//	portfolio chat [question] - Talk to the assistant without the game
//	portfolio world           - Print or render the world for a viewport
//	portfolio runs            - Show run history
//	portfolio schema [name]   - Print a JSON schema
//	portfolio config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: config tick_rate)
//	--config <path>      - Use a specific config file
//	--db <path>          - Enable run history at this database path
//	--profile <path>     - Use a résumé YAML instead of the sample
//	--env-file <path>    - Read credentials from this file (default: .env)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/chat"
	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/profile"
	"github.com/vovakirdan/tui-portfolio/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagProfile  string
	flagEnvFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio - a résumé you play through",
	Long: `Portfolio turns a résumé into a small platform game. Each box along the
way holds one section: about, education, experience, projects, skills and
contact. Jump into a box from below to open it.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start the HTTP API and websocket play server
  chat     - Talk to the assistant
  world    - Print or render the world layout
  runs     - Show run history
  schema   - Print JSON schemas
  config   - Print the effective configuration

Examples:
  portfolio play
  portfolio play --profile ./me.yaml
  portfolio serve --ssh :2222
  portfolio web --http :8080
  portfolio world --width 1280 --height 720 --png world.png`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config tick_rate)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (empty = disabled)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Path to résumé YAML (default: built-in sample)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "File with OPENAI_API_KEY and friends")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}

// loadConfig resolves the config file, the environment and the global flags.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("loading config", err)
	}
	if err := config.ApplyEnv(&cfg, flagEnvFile); err != nil {
		fail("loading environment", err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Server.TickRate = flagFPS
	}
	return cfg
}

func loadProfile() profile.Profile {
	if flagProfile == "" {
		return profile.Default()
	}
	p, err := profile.Load(flagProfile)
	if err != nil {
		fail("loading profile", err)
	}
	return p
}

// newLogger creates a stderr logger at the --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openStore opens run history when a database path is configured.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if cfg.Storage.DBPath == "" {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		// Continue without storage
		return nil
	}
	return store
}

// newAssistant builds the assistant with its greeting.
func newAssistant(cfg config.Config, prof profile.Profile, logger *log.Logger) *chat.Assistant {
	name := cfg.Chat.AssistantName
	return chat.NewAssistant(
		chat.NewClient(cfg.Chat),
		profile.SystemPrompt(prof, name),
		profile.Greeting(prof, name),
	).WithLogger(logger)
}
