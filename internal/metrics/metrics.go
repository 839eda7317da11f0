package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/finance-tracker/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Account flow metrics

	OTPIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fintrack",
		Name:      "otp_issued_total",
		Help:      "One-time codes issued, by purpose and delivery outcome.",
	}, []string{"purpose", "outcome"})

	OTPVerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fintrack",
		Name:      "otp_verifications_total",
		Help:      "One-time code checks, by purpose and outcome.",
	}, []string{"purpose", "outcome"})

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fintrack",
		Name:      "login_attempts_total",
		Help:      "Password checks at login, by outcome.",
	}, []string{"outcome"})

	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fintrack",
		Name:      "tokens_issued_total",
		Help:      "Signed tokens minted, by type.",
	}, []string{"type"})

	// Ownership guard

	OwnershipDeniedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fintrack",
		Name:      "ownership_denied_total",
		Help:      "Single-resource operations rejected because the caller is not the owner.",
	}, []string{"kind", "action"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fintrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fintrack",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		OTPIssuedTotal,
		OTPVerificationsTotal,
		LoginAttemptsTotal,
		TokensIssuedTotal,
		OwnershipDeniedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer exposes /metrics and the liveness/readiness probes on a separate port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}

