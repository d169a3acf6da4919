package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TestMetricsMiddleware_UsesRoutePattern ensures the metrics middleware labels
// by the chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	// Register a concrete route so chi can attach a pattern
	r.Post("/ask", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	h := MetricsMiddleware(r)

	req := httptest.NewRequest(http.MethodPost, "/ask", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}

	// Scrape /metrics and assert our metric family is present and includes '/ask'
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte("askd_http_requests_total")) || !bytes.Contains(body, []byte("/ask")) {
		preview := body
		if len(preview) > 400 {
			preview = preview[:400]
		}
		t.Fatalf("expected metrics to contain askd_http_requests_total with '/ask'; got: %q", string(preview))
	}
}

func TestStatusRecorderCapturesCode(t *testing.T) {
	rr := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rr, status: 200}
	sr.WriteHeader(http.StatusBadGateway)
	if sr.status != http.StatusBadGateway || rr.Code != http.StatusBadGateway {
		t.Fatalf("status=%d recorded=%d", sr.status, rr.Code)
	}
}

func TestItoa(t *testing.T) {
	tests := map[int]string{0: "0", 200: "200", 404: "404", 1000: "1000"}
	for n, want := range tests {
		if got := itoa(n); got != want {
			t.Fatalf("itoa(%d) = %q, want %q", n, got, want)
		}
	}
}
