package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vovakirdan/tui-portfolio/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default().Chat
	cfg.Endpoint = srv.URL + "/v1/chat/completions"
	cfg.APIKey = "sk-test"
	return NewClient(cfg), &calls
}

func TestClientComplete(t *testing.T) {
	var got completionRequest
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, expected POST", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"It's-a me!"}}]}`))
	})

	text, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "who?"},
	})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if text != "It's-a me!" {
		t.Errorf("Complete() = %q", text)
	}

	cfg := config.Default().Chat
	if got.Model != cfg.Model || got.Temperature != cfg.Temperature || got.MaxTokens != cfg.MaxTokens {
		t.Errorf("request = %+v, expected model/temperature/max_tokens from config", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != RoleSystem {
		t.Errorf("request messages = %+v", got.Messages)
	}
}

func TestClientNotConfigured(t *testing.T) {
	for _, key := range []string{"", "  ", PlaceholderAPIKey} {
		client, calls := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
		client.apiKey = strings.TrimSpace(key)

		if client.Configured() {
			t.Errorf("key %q: Configured() = true", key)
		}
		if _, err := client.Complete(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("key %q: Complete() error = %v, expected ErrNotConfigured", key, err)
		}
		if atomic.LoadInt32(calls) != 0 {
			t.Errorf("key %q: made %d requests, expected none", key, *calls)
		}
	}
}

func TestClientAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"with message", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided"}}`, "Incorrect API key provided"},
		{"without body", http.StatusInternalServerError, ``, "API error: 500"},
		{"non-json body", http.StatusBadGateway, `<html>`, "API error: 502"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.Complete(context.Background(), nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Complete() error = %v, expected *APIError", err)
			}
			if apiErr.StatusCode != tc.status || err.Error() != tc.expected {
				t.Errorf("error = %d %q, expected %d %q", apiErr.StatusCode, err.Error(), tc.status, tc.expected)
			}
		})
	}
}

func TestClientEmptyChoices(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	text, err := client.Complete(context.Background(), nil)
	if err != nil || text != "" {
		t.Errorf("Complete() = %q, %v, expected empty text without error", text, err)
	}
}

func TestClientDecodeError(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	if _, err := client.Complete(context.Background(), nil); err == nil {
		t.Error("Complete() with an invalid body should fail")
	}
}
