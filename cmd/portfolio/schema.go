package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/schema"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema [config|client|server|chat]",
	Short: "Print a JSON schema",
	Long: `Print the JSON schema of the configuration file or of a browser
protocol message.

Examples:
  portfolio schema
  portfolio schema client
  portfolio schema config --out schemas/config.json`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: schema.Names,
	Run:       runSchema,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, the environment and
global flags are applied. The API key is never printed.`,
	Run: runConfig,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write to this path instead of stdout")
}

func runSchema(_ *cobra.Command, args []string) {
	name := schema.Config
	if len(args) == 1 {
		name = args[0]
	}
	data, err := schema.Marshal(name)
	if err != nil {
		fail("building schema", fmt.Errorf("%w (choose one of: %s)", err, strings.Join(schema.Names, ", ")))
	}

	if flagSchemaOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.MkdirAll(filepath.Dir(flagSchemaOut), 0o755); err != nil {
		fail("creating output directory", err)
	}
	if err := os.WriteFile(flagSchemaOut, data, 0o644); err != nil {
		fail("writing schema", err)
	}
	fmt.Printf("Wrote %s\n", flagSchemaOut)
}

func runConfig(_ *cobra.Command, _ []string) {
	data, err := config.Encode(loadConfig())
	if err != nil {
		fail("encoding config", err)
	}
	os.Stdout.Write(data)
}
