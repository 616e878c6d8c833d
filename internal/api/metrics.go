package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kasjer_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kasjer_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	cashierRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kasjer_cashier_requests_total",
		Help: "Accepted deposit and withdrawal requests.",
	}, []string{"kind"})

	signupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kasjer_signups_total",
		Help: "Accounts created.",
	})

	loginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kasjer_login_failures_total",
		Help: "Rejected login attempts.",
	})

	messagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kasjer_messages_sent_total",
		Help: "Inbox messages written, broadcasts counted per recipient.",
	})

	queuePublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kasjer_queue_publish_failures_total",
		Help: "Events that could not be handed to the back-office queue.",
	}, []string{"event"})
)

// MetricsMiddleware records request counts and latency per chi route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
