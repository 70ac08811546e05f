package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddlewaresKeepStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(ChiTraceMiddleware("test"), ChiMetricsMiddleware, ChiLogMiddleware("test"))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/1", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
}

func TestRoutePatternWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if got := routePattern(req); got != "unknown_route" {
		t.Fatalf("routePattern = %q", got)
	}
}

func TestSeverityForStatus(t *testing.T) {
	cases := map[int]string{200: "INFO", 404: "WARN", 503: "ERROR"}
	for status, want := range cases {
		if got := severityText(severityForStatus(status)); got != want {
			t.Fatalf("status %d: got %s, want %s", status, got, want)
		}
	}
}
