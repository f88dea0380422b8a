package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MikhailRaia/mini-shortener/internal/logger"
	"github.com/MikhailRaia/mini-shortener/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Metrics records request count, latency and in-flight requests per chi
// route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.HTTPInflightRequests.Inc()
		defer metrics.HTTPInflightRequests.Dec()

		ww := logger.NewResponseWriter(w)
		next.ServeHTTP(ww, r)

		route := "UNMATCHED"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
