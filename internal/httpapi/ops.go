package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"askd/internal/backend"
	"askd/pkg/types"
)

// BackendStatus reports per-backend readiness. The worker's gateway
// satisfies it.
type BackendStatus interface {
	IsReady(name backend.Name) bool
}

// NewOpsMux serves the worker process's operational endpoints. Backend
// readiness lives here rather than on the front end because the models
// are loaded in the worker.
func NewOpsMux(bs BackendStatus) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Ready as long as at least one backend can serve; a degraded
	// remote must not take the whole worker out of rotation.
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		for _, d := range backend.All() {
			if bs.IsReady(d.Name) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ready"))
				return
			}
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	r.Get("/backends", func(w http.ResponseWriter, r *http.Request) {
		resp := types.BackendsResponse{}
		for _, d := range backend.All() {
			resp.Backends = append(resp.Backends, types.BackendInfo{
				Name:  string(d.Name),
				Model: d.Model,
				Ready: bs.IsReady(d.Name),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
