package middleware

import (
	"net/http"
	"strconv"
	"time"

	"mucevher-backend/pkg/metrics"
)

// NewMetricsMiddleware records request counts and latency labelled by the
// matched route pattern, keeping label cardinality bounded.
func NewMetricsMiddleware(m *metrics.ServerMetrics, mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if _, pattern := mux.Handler(r); pattern != "" {
				route = pattern
			}
			m.ObserveRequest(route, strconv.Itoa(wrapped.statusCode), float64(time.Since(start).Microseconds())/1000)
		})
	}
}
