package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"positive jump power", func(c *Config) { c.Physics.JumpPower = 5 }, "jump_power"},
		{"zero gravity", func(c *Config) { c.Physics.Gravity = 0 }, "gravity"},
		{"short strides", func(c *Config) { c.World.Strides = []float64{0.1, 0.2} }, "strides must have 6"},
		{"unordered strides", func(c *Config) { c.World.Strides = []float64{0.1, 0.4, 0.3, 1.0, 1.3, 1.6} }, "strides must increase"},
		{"ground fraction", func(c *Config) { c.World.GroundFraction = 1.5 }, "ground_fraction"},
		{"max tokens", func(c *Config) { c.Chat.MaxTokens = 0 }, "max_tokens"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %q, expected it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "physics:\n  gravity: 2.5\nchat:\n  model: test-model\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 2.5 {
		t.Errorf("Gravity = %v, expected 2.5", cfg.Physics.Gravity)
	}
	if cfg.Chat.Model != "test-model" {
		t.Errorf("Model = %q, expected test-model", cfg.Chat.Model)
	}
	if cfg.Physics.MoveSpeed != 0.4 {
		t.Errorf("MoveSpeed = %v, expected default 0.4", cfg.Physics.MoveSpeed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of an invalid config should fail")
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if got := cfg.Physics.JumpCooldown().Milliseconds(); got != 300 {
		t.Errorf("JumpCooldown() = %dms, expected 300ms", got)
	}
	if got := cfg.Physics.StallThreshold().Milliseconds(); got != 100 {
		t.Errorf("StallThreshold() = %dms, expected 100ms", got)
	}
	if got := cfg.Input.HoldTimeout().Milliseconds(); got != 250 {
		t.Errorf("HoldTimeout() = %dms, expected 250ms", got)
	}
}

func TestApplyEnvFromFile(t *testing.T) {
	for _, key := range []string{EnvAPIKey, EnvBaseURL} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv(EnvModel, "env-model")

	path := filepath.Join(t.TempDir(), ".env")
	data := "OPENAI_API_KEY=sk-from-file\nOPENAI_BASE_URL=http://localhost:9999/v1/\nOPENAI_MODEL=file-model\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := ApplyEnv(&cfg, path); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Chat.APIKey != "sk-from-file" {
		t.Errorf("APIKey = %q, expected sk-from-file", cfg.Chat.APIKey)
	}
	if cfg.Chat.Endpoint != "http://localhost:9999/v1/chat/completions" {
		t.Errorf("Endpoint = %q", cfg.Chat.Endpoint)
	}
	if cfg.Chat.Model != "env-model" {
		t.Errorf("Model = %q, expected process env to win", cfg.Chat.Model)
	}
}

func TestApplyEnvMissingFile(t *testing.T) {
	cfg := Default()
	if err := ApplyEnv(&cfg, filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("ApplyEnv() with a missing file = %v, expected nil", err)
	}
}

func TestEncodeOmitsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Chat.APIKey = "sk-secret"

	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if strings.Contains(string(data), "sk-secret") {
		t.Error("Encode() leaked the API key")
	}
}
