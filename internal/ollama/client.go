// Package ollama is a minimal client for the REST API of an
// Ollama-compatible inference daemon. It covers exactly the two calls
// this service needs: a non-streaming chat completion and the
// available-model listing. Failures surface immediately; retrying is
// the orchestration layer's job.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is where a locally installed daemon listens.
const DefaultBaseURL = "http://127.0.0.1:11434"

// Config configures the client.
type Config struct {
	// BaseURL of the daemon; DefaultBaseURL when empty.
	BaseURL string
	// Timeout per request; generation can be slow, default 300s.
	Timeout time.Duration
}

// Client talks to one daemon. Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
}

// New builds a client for cfg.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &Client{baseURL: base, hc: &http.Client{Timeout: timeout}}
}

// BaseURL returns the resolved daemon address.
func (c *Client) BaseURL() string { return c.baseURL }

// Message mirrors the daemon's chat wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are the generation options understood by POST /api/chat.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  Options   `json:"options"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

// Chat runs one non-streaming chat completion and returns the text
// content of the daemon's reply.
func (c *Client) Chat(ctx context.Context, model string, msgs []Message, opts Options) (string, error) {
	body, err := json.Marshal(chatRequest{Model: model, Messages: msgs, Options: opts})
	if err != nil {
		return "", err
	}
	var out chatResponse
	if err := c.post(ctx, "/api/chat", body, &out); err != nil {
		return "", err
	}
	return out.Message.Content, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// List returns the names of the models the daemon has pulled.
func (c *Client) List(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	var out tagsResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		// The daemon reports failures as {"error": "..."}.
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &e) == nil && e.Error != "" {
			return fmt.Errorf("ollama: %s", e.Error)
		}
		return fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("ollama: decode response: %w", err)
	}
	return nil
}
