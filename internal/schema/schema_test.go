package schema

import (
	"encoding/json"
	"testing"
)

func properties(t *testing.T, name string) map[string]any {
	t.Helper()
	data, err := Marshal(name)
	if err != nil {
		t.Fatalf("Marshal(%q) failed: %v", name, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Marshal(%q) produced invalid JSON: %v", name, err)
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema %q has no properties: %s", name, data)
	}
	return props
}

func TestConfigSchema(t *testing.T) {
	props := properties(t, Config)
	for _, key := range []string{"physics", "world", "input", "chat", "server", "storage"} {
		if _, ok := props[key]; !ok {
			t.Errorf("config schema is missing %q", key)
		}
	}

	chat, _ := props["chat"].(map[string]any)
	chatProps, _ := chat["properties"].(map[string]any)
	if _, ok := chatProps["model"]; !ok {
		t.Error("chat section should be expanded inline")
	}
	for key := range chatProps {
		if key == "APIKey" || key == "api_key" {
			t.Error("config schema must not expose the API key")
		}
	}
}

func TestProtocolSchemas(t *testing.T) {
	if _, ok := properties(t, Client)["type"]; !ok {
		t.Error("client schema is missing type")
	}
	if _, ok := properties(t, Server)["state"]; !ok {
		t.Error("server schema is missing state")
	}
	if _, ok := properties(t, ChatBody)["messages"]; !ok {
		t.Error("chat schema is missing messages")
	}
}

func TestAllNamesBuild(t *testing.T) {
	for _, name := range Names {
		s, err := Build(name)
		if err != nil {
			t.Errorf("Build(%q) failed: %v", name, err)
			continue
		}
		if s.Title == "" {
			t.Errorf("Build(%q) has no title", name)
		}
	}
	if _, err := Build("nope"); err == nil {
		t.Error("Build(nope) should fail")
	}
}
