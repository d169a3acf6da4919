package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestChat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "Sirius."},
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	msgs := []Message{
		{Role: "system", Content: "You are a librarian."},
		{Role: "user", Content: "Brightest star?"},
	}
	text, err := c.Chat(context.Background(), "gpt-oss:20b", msgs, Options{Temperature: 0.7, TopP: 0.9, NumPredict: 100})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if text != "Sirius." {
		t.Fatalf("unexpected content: %q", text)
	}
	if got.Model != "gpt-oss:20b" || got.Stream {
		t.Fatalf("unexpected request fields: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[1].Content != "Brightest star?" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	if got.Options.Temperature != 0.7 || got.Options.TopP != 0.9 || got.Options.NumPredict != 100 {
		t.Fatalf("unexpected options: %+v", got.Options)
	}
}

func TestChatDaemonError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"missing\" not found"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Chat(context.Background(), "missing", nil, Options{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("daemon error body should be surfaced: %v", err)
	}
}

func TestChatUnreachable(t *testing.T) {
	// A closed port: connection refused, surfaced immediately.
	c := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if _, err := c.Chat(context.Background(), "m", nil, Options{}); err == nil {
		t.Fatalf("expected a connection error")
	}
}

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tags" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"gpt-oss:20b","size":13780173839},{"name":"llama3:8b"}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	names, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "gpt-oss:20b" || names[1] != "llama3:8b" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{})
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("unexpected default base url: %s", c.BaseURL())
	}
	c = New(Config{BaseURL: "http://host:11434/"})
	if c.BaseURL() != "http://host:11434" {
		t.Fatalf("trailing slash should be trimmed: %s", c.BaseURL())
	}
}
