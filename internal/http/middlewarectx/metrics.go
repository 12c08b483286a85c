package middlewarectx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "core_api_http_requests_total",
		Help: "Total number of HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "core_api_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// MetricsMiddleware собирает счётчик запросов и гистограмму задержек.
// Метка path берётся из шаблона маршрута chi, чтобы динамические
// сегменты не раздували кардинальность.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		timer := prometheus.NewTimer(nil)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		requestDuration.WithLabelValues(r.Method, path).Observe(timer.ObserveDuration().Seconds())
		requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
	})
}
