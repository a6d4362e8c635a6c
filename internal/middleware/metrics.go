package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/wellness-tracker/internal/metrics"
)

// unmatchedRoute labels requests no route matched, so random 404 paths
// don't each create a new time series.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per chi route pattern
// ("/api/moods/{user_id}"), not per raw path.
//
// The pattern is only known after routing, so it is read once the handler
// returns. /metrics itself is not counted.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := wrap(w)

		next.ServeHTTP(wrapped, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
