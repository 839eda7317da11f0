package metrics_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/finance-tracker/internal/health"
	"github.com/ErlanBelekov/finance-tracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func serve(t *testing.T, checker *health.Checker, path string) *httptest.ResponseRecorder {
	t.Helper()
	srv := metrics.NewServer(":0", checker)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Readyz(t *testing.T) {
	up := health.NewChecker(map[string]health.Pinger{"postgres": stubPinger{}}, slog.Default(), prometheus.NewRegistry())
	if w := serve(t, up, "/readyz"); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	down := health.NewChecker(map[string]health.Pinger{"postgres": stubPinger{err: errors.New("down")}}, slog.Default(), prometheus.NewRegistry())
	if w := serve(t, down, "/readyz"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestServer_Healthz(t *testing.T) {
	c := health.NewChecker(map[string]health.Pinger{"postgres": stubPinger{err: errors.New("down")}}, slog.Default(), prometheus.NewRegistry())
	if w := serve(t, c, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 even when dependencies are down", w.Code)
	}
}
