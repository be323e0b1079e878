package middlewarex

import (
	"cmp"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zenazn/goji/web/mutil"

	"floor_predictor/pkg/metrics"
)

// Metrics records per-request prometheus metrics. The path label is the
// chi route pattern, not the raw URL, to keep the label cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := mutil.WrapWriter(w)

		next.ServeHTTP(lw, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}

		status := cmp.Or(lw.Status(), http.StatusOK)
		statusCode := strconv.Itoa(status)

		metrics.RequestsCounter.WithLabelValues(r.Method, path).Inc()
		metrics.RequestTime.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())

		if status >= http.StatusInternalServerError {
			metrics.ErrorsCounter.WithLabelValues(r.Method, path, statusCode).Inc()
		} else {
			metrics.SuccessCounter.WithLabelValues(r.Method, path, statusCode).Inc()
		}
	})
}
