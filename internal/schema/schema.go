// Package schema emits JSON Schemas for the configuration file and the
// browser protocol.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/vovakirdan/tui-portfolio/internal/config"
	"github.com/vovakirdan/tui-portfolio/internal/platform/web"
)

// Names accepted by Build.
const (
	Config   = "config"
	Client   = "client"
	Server   = "server"
	ChatBody = "chat"
)

// Names lists the schemas in a stable order.
var Names = []string{Config, Client, Server, ChatBody}

type entry struct {
	title       string
	description string
	typ         reflect.Type
}

var entries = map[string]entry{
	Config: {
		title:       "Portfolio Configuration",
		description: "YAML configuration for physics, world layout, input, chat, servers and storage. Every key is optional.",
		typ:         reflect.TypeOf(config.Config{}),
	},
	Client: {
		title:       "Play Client Message",
		description: "Message sent by the browser on /ws/play.",
		typ:         reflect.TypeOf(web.ClientMessage{}),
	},
	Server: {
		title:       "Play State Message",
		description: "Per-frame message sent to the browser on /ws/play.",
		typ:         reflect.TypeOf(web.StateMessage{}),
	},
	ChatBody: {
		title:       "Chat Request",
		description: "Body of POST /api/chat.",
		typ:         reflect.TypeOf(web.ChatRequest{}),
	},
}

// Build reflects the named schema.
func Build(name string) (*jsonschema.Schema, error) {
	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("schema: unknown schema %q", name)
	}

	reflector := jsonschema.Reflector{
		// The config file is decoded over defaults, so nothing is required.
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := reflector.ReflectFromType(e.typ)
	if s == nil {
		return nil, fmt.Errorf("schema: failed to reflect %s", name)
	}
	s.Title = e.title
	s.Description = e.description
	return s, nil
}

// Marshal renders the named schema as indented JSON.
func Marshal(name string) ([]byte, error) {
	s, err := Build(name)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: marshal %s: %w", name, err)
	}
	return append(data, '\n'), nil
}
