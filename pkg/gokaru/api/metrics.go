package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// once guards registration; the default registry panics on duplicates.
	once sync.Once

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gokaru",
			Name:      "http_requests_total",
			Help:      "Signing API requests by method, route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gokaru",
			Name:      "http_request_duration_seconds",
			Help:      "Signing API latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	signedURLs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gokaru",
			Name:      "signed_urls_total",
			Help:      "URLs rendered by kind: thumbnail, origin or file.",
		},
		[]string{"kind"},
	)

	verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gokaru",
			Name:      "thumbnail_verifications_total",
			Help:      "Thumbnail verifications by result.",
		},
		[]string{"result"},
	)
)

// InitMetrics registers the API collectors with the default registry. It is
// safe to call more than once.
func InitMetrics() {
	once.Do(func() {
		prometheus.MustRegister(requestsTotal, requestDuration, signedURLs, verifications)
	})
}

// Metrics records request count and latency labelled with the chi route
// pattern rather than the raw path.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
