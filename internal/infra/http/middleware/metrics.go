package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	referralsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referrals_created_total",
			Help: "Total number of referrals submitted, by bonus tier",
		},
		[]string{"tier"},
	)

	referralStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referral_status_changes_total",
			Help: "Total number of referral status changes, by target status",
		},
		[]string{"status"},
	)

	partnerDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partner_decisions_total",
			Help: "Total number of partner approval decisions",
		},
		[]string{"decision"},
	)

	payoutsOverdue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "referral_payouts_overdue",
			Help: "Converted referrals past the payout window",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern usa o padrão do chi (/admin/referrals/{id}/status) para não
// criar uma série por ID.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordReferralCreated(tier string) {
	referralsCreated.WithLabelValues(tier).Inc()
}

func RecordReferralStatusChange(status string) {
	referralStatusChanges.WithLabelValues(status).Inc()
}

func RecordPartnerDecision(decision string) {
	partnerDecisions.WithLabelValues(decision).Inc()
}

func SetPayoutsOverdue(n int) {
	payoutsOverdue.Set(float64(n))
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
