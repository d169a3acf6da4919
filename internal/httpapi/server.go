// Package httpapi serves the submission and status front ends: a JSON
// API plus a websocket channel for clients that want the acceptance
// and completion events pushed to them.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"askd/internal/ask"
	"askd/internal/backend"
	"askd/pkg/types"
)

// Orchestrator defines the engine operations the HTTP layer needs.
type Orchestrator interface {
	// StartQuestion begins one run and returns without waiting for it.
	StartQuestion(ctx context.Context, prompt, backendName string) (ask.Run, error)
	// Await blocks until the run completes and returns its answer.
	Await(ctx context.Context, r ask.Run) (string, error)
	// DescribeMany reports the status of each identifier, UNKNOWN for
	// failed lookups.
	DescribeMany(ctx context.Context, ids []string) []types.RunStatus
	// Healthy pings the engine.
	Healthy(ctx context.Context) error
}

// readyzTimeout bounds the engine health check behind GET /readyz.
const readyzTimeout = 2 * time.Second

func NewMux(orc Orchestrator) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/ask", handleAsk(orc))
	r.Get("/runs", handleRuns(orc))
	r.Get("/ws", handleWS(orc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()
		if err := orc.Healthy(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("engine unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleAsk starts one run per submission and acknowledges it without
// waiting for the answer; clients follow up over /runs or /ws.
func handleAsk(orc Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		run, err := orc.StartQuestion(ctx, req.Prompt, req.Backend)
		if err != nil {
			if he, ok := err.(HTTPError); ok {
				writeJSONError(w, he.StatusCode(), he.Error())
				return
			}
			// The engine is the only collaborator here, so a failed
			// start means we could not reach it.
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		submissionsTotal.WithLabelValues("http").Inc()
		zlog.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("workflow_id", run.ID).
			Str("backend", effectiveBackend(req.Backend)).
			Msg("question accepted")

		writeJSON(w, http.StatusAccepted, types.AskAccepted{
			ID:      run.ID,
			RunID:   run.RunID,
			Prompt:  req.Prompt,
			Backend: effectiveBackend(req.Backend),
		})
	}
}

// handleRuns serves a point-in-time status snapshot for a
// comma-separated list of workflow identifiers.
func handleRuns(orc Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := splitIDs(r.URL.Query().Get("ids"))
		if len(ids) == 0 {
			writeJSONError(w, http.StatusBadRequest, "ids query parameter is required")
			return
		}
		statuses := orc.DescribeMany(r.Context(), ids)
		writeJSON(w, http.StatusOK, types.WorkflowStatuses{Workflows: statuses})
	}
}

// effectiveBackend names the backend a submission will actually run
// on, filling in the default for clients that did not pick one.
func effectiveBackend(name string) string {
	if name == "" {
		return string(backend.Default)
	}
	return name
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
