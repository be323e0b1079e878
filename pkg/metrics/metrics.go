package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	// RequestTime is the request processing time histogram.
	RequestTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_processing_seconds",
			Help:    "Processing time histogram",
			Buckets: []float64{0.05, 0.2, 0.3, 0.7, 1.0, 1.5, 2.5, 5.0, 10.0, 20.0, 40.0, 60.0, 120.0},
		},
		[]string{"method", "path"},
	)

	// RequestsCounter counts every inbound request.
	RequestsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests",
		},
		[]string{"method", "path"},
	)

	// SuccessCounter counts processed requests (including non-2xx status codes).
	SuccessCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "success_total",
			Help: "Total number of processed requests without exceptions (including non-2xx status codes)",
		},
		[]string{"method", "path", "status_code"},
	)

	// ErrorsCounter counts requests that ended with a server-side error.
	ErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors in requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ExternalServiceUp reports the last known health of an external
	// dependency, as observed by the service watcher.
	ExternalServiceUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "external_service_up",
			Help: "Whether the external service responded to the last health check",
		},
		[]string{"service"},
	)
)
