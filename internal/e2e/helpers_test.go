package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"askd/internal/backend"
	"askd/internal/gateway"
	"askd/internal/llm"
	"askd/internal/ollama"
)

// echoModel mimics a llama.cpp runtime: its emission echoes the
// rendered prompt before the completion, terminated by a turn end.
type echoModel struct{ answer string }

func (m *echoModel) Tokenize(text string) ([]int32, error) {
	return make([]int32, len(text)/4+1), nil
}

func (m *echoModel) Generate(ctx context.Context, prompt string, p llm.Params) (string, error) {
	return prompt + m.answer + llm.TurnEnd, nil
}

func (m *echoModel) Close() error { return nil }

// fakeDaemon is a minimal remote daemon: /api/tags lists the given
// models, /api/chat answers every exchange with the canned reply.
func fakeDaemon(t *testing.T, reply string, models ...string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		type tag struct {
			Name string `json:"name"`
		}
		tags := make([]tag, len(models))
		for i, m := range models {
			tags[i] = tag{Name: m}
		}
		json.NewEncoder(w).Encode(map[string]any{"models": tags})
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": reply},
			"done":    true,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newGateway builds an initialized gateway backed by the echo model
// and the daemon at daemonURL.
func newGateway(t *testing.T, answer, daemonURL string) *gateway.Gateway {
	t.Helper()
	dir := t.TempDir()
	weights := filepath.Join(dir, "smollm3-3b-q4.gguf")
	if err := os.WriteFile(weights, []byte("gguf"), 0o644); err != nil {
		t.Fatalf("write weights: %v", err)
	}
	gw := gateway.New(gateway.Config{
		LocalModel: weights,
		Ollama:     ollama.Config{BaseURL: daemonURL},
		LoadLocal: func(string, int, int) (llm.Model, error) {
			return &echoModel{answer: answer}, nil
		},
	}, zerolog.Nop(), nil)
	if err := gw.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize gateway: %v", err)
	}
	t.Cleanup(func() { _ = gw.Close() })
	return gw
}

// remoteModel is the model identifier the remote descriptor expects
// the daemon to host.
func remoteModel(t *testing.T) string {
	t.Helper()
	desc, ok := backend.Lookup(backend.RemoteLarge)
	if !ok {
		t.Fatal("remote descriptor missing")
	}
	return desc.Model
}
