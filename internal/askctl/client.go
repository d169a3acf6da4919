// Package askctl implements the operator CLI: small HTTP and socket
// clients for poking a running deployment from a terminal.
package askctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"askd/pkg/types"
)

// Client talks to one running deployment: the web front end plus the
// worker's operational listener.
type Client struct {
	// ServerURL is the front end base, e.g. "http://127.0.0.1:8080".
	ServerURL string
	// OpsURL is the worker ops base, e.g. "http://127.0.0.1:9090".
	OpsURL string
	hc     *http.Client
}

// NewClient builds a client with one timeout applied to every HTTP
// request. Socket reads are bounded by the caller's context instead.
func NewClient(serverURL, opsURL string, timeout time.Duration) *Client {
	return &Client{
		ServerURL: strings.TrimRight(serverURL, "/"),
		OpsURL:    strings.TrimRight(opsURL, "/"),
		hc:        &http.Client{Timeout: timeout},
	}
}

// Probe reports one service endpoint's reply.
type Probe struct {
	Target string
	Path   string
	OK     bool
	Detail string
}

// Health probes liveness and readiness of both services. A failed
// probe never aborts the rest; every entry reports independently.
func (c *Client) Health(ctx context.Context) []Probe {
	targets := []struct{ name, base, path string }{
		{"server", c.ServerURL, "/healthz"},
		{"server", c.ServerURL, "/readyz"},
		{"worker", c.OpsURL, "/healthz"},
		{"worker", c.OpsURL, "/readyz"},
	}
	out := make([]Probe, 0, len(targets))
	for _, tg := range targets {
		p := Probe{Target: tg.name, Path: tg.path}
		body, status, err := c.get(ctx, tg.base+tg.path)
		switch {
		case err != nil:
			p.Detail = err.Error()
		case status != http.StatusOK:
			p.Detail = fmt.Sprintf("%d %s", status, strings.TrimSpace(string(body)))
		default:
			p.OK = true
			p.Detail = strings.TrimSpace(string(body))
		}
		out = append(out, p)
	}
	return out
}

// Submit posts a question and returns the acknowledgement without
// waiting for the answer.
func (c *Client) Submit(ctx context.Context, prompt, backend string) (types.AskAccepted, error) {
	payload, err := json.Marshal(types.AskRequest{Prompt: prompt, Backend: backend})
	if err != nil {
		return types.AskAccepted{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ServerURL+"/ask", bytes.NewReader(payload))
	if err != nil {
		return types.AskAccepted{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return types.AskAccepted{}, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusAccepted {
		return types.AskAccepted{}, bodyError(body, resp.StatusCode)
	}
	var acc types.AskAccepted
	if err := json.Unmarshal(body, &acc); err != nil {
		return types.AskAccepted{}, fmt.Errorf("decode acceptance: %w", err)
	}
	return acc, nil
}

// Ask submits a question over the socket and blocks until its answer
// arrives. The context bounds the whole exchange.
func (c *Client) Ask(ctx context.Context, prompt, backend string) (types.AskResult, error) {
	target, err := wsURL(c.ServerURL)
	if err != nil {
		return types.AskResult{}, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return types.AskResult{}, fmt.Errorf("dial %s: %w", target, err)
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(dl)
		_ = conn.SetWriteDeadline(dl)
	}

	payload, err := json.Marshal(types.AskRequest{Prompt: prompt, Backend: backend})
	if err != nil {
		return types.AskResult{}, err
	}
	if err := conn.WriteJSON(types.Envelope{Event: types.EventPrompt, Data: payload}); err != nil {
		return types.AskResult{}, fmt.Errorf("send prompt: %w", err)
	}

	for {
		var env types.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return types.AskResult{}, fmt.Errorf("read event: %w", err)
		}
		switch env.Event {
		case types.EventResponse:
			var res types.AskResult
			if err := json.Unmarshal(env.Data, &res); err != nil {
				return types.AskResult{}, fmt.Errorf("decode response: %w", err)
			}
			return res, nil
		case types.EventError:
			var er types.ErrorResponse
			_ = json.Unmarshal(env.Data, &er)
			return types.AskResult{}, fmt.Errorf("server: %s", er.Error)
		default:
			// Greeting, acceptance and anything else on this
			// dedicated connection is informational.
		}
	}
}

// Statuses fetches the status snapshot for the given workflow ids.
func (c *Client) Statuses(ctx context.Context, ids []string) (types.WorkflowStatuses, error) {
	q := url.Values{"ids": {strings.Join(ids, ",")}}
	body, status, err := c.get(ctx, c.ServerURL+"/runs?"+q.Encode())
	if err != nil {
		return types.WorkflowStatuses{}, err
	}
	if status != http.StatusOK {
		return types.WorkflowStatuses{}, bodyError(body, status)
	}
	var ws types.WorkflowStatuses
	if err := json.Unmarshal(body, &ws); err != nil {
		return types.WorkflowStatuses{}, fmt.Errorf("decode statuses: %w", err)
	}
	return ws, nil
}

// Backends lists the worker's backends and their readiness.
func (c *Client) Backends(ctx context.Context) (types.BackendsResponse, error) {
	body, status, err := c.get(ctx, c.OpsURL+"/backends")
	if err != nil {
		return types.BackendsResponse{}, err
	}
	if status != http.StatusOK {
		return types.BackendsResponse{}, bodyError(body, status)
	}
	var br types.BackendsResponse
	if err := json.Unmarshal(body, &br); err != nil {
		return types.BackendsResponse{}, fmt.Errorf("decode backends: %w", err)
	}
	return br, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// bodyError turns a non-2xx reply into an error, preferring the JSON
// error payload's message over the raw body.
func bodyError(body []byte, status int) error {
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return fmt.Errorf("server: %s (status %d)", er.Error, status)
	}
	return fmt.Errorf("server: status %d: %s", status, strings.TrimSpace(string(body)))
}

// wsURL maps the front end base URL onto its socket endpoint.
func wsURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("server url: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
