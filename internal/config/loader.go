package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"
	EnvModel   = "OPENAI_MODEL"
	EnvDBPath  = "PORTFOLIO_DB"
)

// Load loads the configuration.
// Search order: customPath -> ~/.portfolio/config.yaml -> ./configs/portfolio.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".portfolio", "config.yaml"))
	}
	return append(paths, filepath.Join("configs", "portfolio.yaml"))
}

// ApplyEnv overlays values from the environment. When envFile is set and
// exists it is read first; variables already present in the process
// environment take precedence over the file.
func ApplyEnv(cfg *Config, envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range []string{EnvAPIKey, EnvBaseURL, EnvModel, EnvDBPath} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	if v := strings.TrimSpace(vars[EnvAPIKey]); v != "" {
		cfg.Chat.APIKey = v
	}
	if v := strings.TrimSpace(vars[EnvBaseURL]); v != "" {
		cfg.Chat.Endpoint = strings.TrimRight(v, "/") + "/chat/completions"
	}
	if v := strings.TrimSpace(vars[EnvModel]); v != "" {
		cfg.Chat.Model = v
	}
	if v := strings.TrimSpace(vars[EnvDBPath]); v != "" {
		cfg.Storage.DBPath = v
	}
	return nil
}

// Encode renders the configuration as YAML.
func Encode(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
