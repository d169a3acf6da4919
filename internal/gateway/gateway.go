// Package gateway owns the per-process model resources: the loaded
// local model and the connection to the remote inference daemon. A
// Gateway is constructed once at worker startup, initialized before
// any inference runs, and injected into every consumer; there is no
// package-global state.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"askd/internal/backend"
	"askd/internal/llm"
	"askd/internal/ollama"
)

// Config selects the resources Initialize will acquire.
type Config struct {
	// ModelsDir is scanned for *.gguf weights when LocalModel is empty.
	ModelsDir string
	// LocalModel is an explicit weights path; takes precedence over
	// the directory scan.
	LocalModel string
	// CtxSize is the local model's context window.
	CtxSize int
	// Threads for local generation; <= 0 lets the runtime choose.
	Threads int
	// Ollama locates the remote daemon.
	Ollama ollama.Config
	// LoadLocal overrides the local model loader. Nil uses llm.Load;
	// tests inject a fake.
	LoadLocal func(path string, ctxSize, threads int) (llm.Model, error)
}

// Gateway maps backend names to ready resource handles. All fields
// below cfg are written only by Initialize, which completes before the
// process serves requests; reads afterward are lock-free.
type Gateway struct {
	cfg Config
	log zerolog.Logger
	pub EventPublisher

	local       llm.Model
	localDesc   backend.Descriptor
	localReady  bool
	remote      *ollama.Client
	remoteDesc  backend.Descriptor
	remoteReady bool
	initialized bool
}

// New builds an uninitialized Gateway. No backend is ready until
// Initialize returns.
func New(cfg Config, log zerolog.Logger, pub EventPublisher) *Gateway {
	if pub == nil {
		pub = noopPublisher{}
	}
	if cfg.LoadLocal == nil {
		cfg.LoadLocal = llm.Load
	}
	return &Gateway{
		cfg: cfg,
		log: log.With().Str("component", "gateway").Logger(),
		pub: pub,
	}
}

// Initialize acquires every backend's resources, once. A local model
// failure is fatal and returned: the process must not serve. A remote
// daemon that is unreachable or missing the expected model leaves only
// that backend not-ready; this is a logged degradation, not an error,
// so the local backend can still serve.
func (g *Gateway) Initialize(ctx context.Context) error {
	if g.initialized {
		return errors.New("gateway already initialized")
	}
	g.initialized = true

	g.localDesc, _ = backend.Lookup(backend.LocalSmall)
	g.remoteDesc, _ = backend.Lookup(backend.RemoteLarge)

	if err := g.initLocal(); err != nil {
		g.pub.Publish(Event{Name: EventLoadFailed, Backend: string(backend.LocalSmall), Fields: map[string]any{"error": err.Error()}})
		return fmt.Errorf("load local model: %w", err)
	}
	g.initRemote(ctx)
	return nil
}

func (g *Gateway) initLocal() error {
	path, err := g.resolveWeights()
	if err != nil {
		return err
	}
	g.log.Info().Str("backend", string(backend.LocalSmall)).Str("path", path).Msg("loading local model")
	m, err := g.cfg.LoadLocal(path, g.cfg.CtxSize, g.cfg.Threads)
	if err != nil {
		return err
	}
	g.local = m
	g.localReady = true
	g.log.Info().Str("backend", string(backend.LocalSmall)).Msg("local model ready")
	g.pub.Publish(Event{Name: EventReady, Backend: string(backend.LocalSmall), Fields: map[string]any{"path": path}})
	return nil
}

func (g *Gateway) initRemote(ctx context.Context) {
	client := ollama.New(g.cfg.Ollama)
	degrade := func(reason string) {
		g.log.Warn().
			Str("backend", string(backend.RemoteLarge)).
			Str("daemon", client.BaseURL()).
			Str("reason", reason).
			Msg("remote backend degraded, marked not-ready")
		g.pub.Publish(Event{Name: EventDegraded, Backend: string(backend.RemoteLarge), Fields: map[string]any{"reason": reason}})
	}

	names, err := client.List(ctx)
	if err != nil {
		degrade(err.Error())
		return
	}
	found := false
	for _, n := range names {
		if n == g.remoteDesc.Model {
			found = true
			break
		}
	}
	if !found {
		degrade(fmt.Sprintf("model %s not available on daemon", g.remoteDesc.Model))
		return
	}
	g.remote = client
	g.remoteReady = true
	g.log.Info().Str("backend", string(backend.RemoteLarge)).Str("model", g.remoteDesc.Model).Msg("remote backend ready")
	g.pub.Publish(Event{Name: EventReady, Backend: string(backend.RemoteLarge), Fields: map[string]any{"model": g.remoteDesc.Model}})
}

// resolveWeights picks the gguf file to load: the explicit path when
// configured, otherwise the first *.gguf under ModelsDir in name order.
func (g *Gateway) resolveWeights() (string, error) {
	if g.cfg.LocalModel != "" {
		if _, err := os.Stat(g.cfg.LocalModel); err != nil {
			return "", fmt.Errorf("local model weights: %w", err)
		}
		return g.cfg.LocalModel, nil
	}
	if g.cfg.ModelsDir == "" {
		return "", errors.New("no local model path and no models dir configured")
	}
	abs, err := filepath.Abs(g.cfg.ModelsDir)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return "", fmt.Errorf("read models dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".gguf") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no *.gguf weights found in %s", abs)
	}
	sort.Strings(names)
	return filepath.Join(abs, names[0]), nil
}

// IsReady reports whether the named backend finished initialization.
// Pure read, no I/O.
func (g *Gateway) IsReady(name backend.Name) bool {
	switch name {
	case backend.LocalSmall:
		return g.localReady
	case backend.RemoteLarge:
		return g.remoteReady
	default:
		return false
	}
}

// Local returns the loaded local model and its descriptor. Fails with
// a not-initialized error when the backend is absent; never does I/O.
func (g *Gateway) Local() (llm.Model, backend.Descriptor, error) {
	if !g.localReady {
		return nil, backend.Descriptor{}, ErrNotReady(backend.LocalSmall)
	}
	return g.local, g.localDesc, nil
}

// Remote returns the daemon client and the remote descriptor. Fails
// with a not-initialized error when the backend is absent; never does
// I/O.
func (g *Gateway) Remote() (*ollama.Client, backend.Descriptor, error) {
	if !g.remoteReady {
		return nil, backend.Descriptor{}, ErrNotReady(backend.RemoteLarge)
	}
	return g.remote, g.remoteDesc, nil
}

// Close frees the local model. Idempotent.
func (g *Gateway) Close() error {
	if g.local == nil {
		return nil
	}
	err := g.local.Close()
	g.local = nil
	g.localReady = false
	return err
}
