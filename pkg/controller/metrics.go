package controller

import (
	"errors"
	"fmt"
	"linkguard/pkg/metrics"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WithMetrics returns a middleware recording request durations by method
// and status code in reg. Registering twice on the same registry reuses the
// existing histogram.
func WithMetrics(reg prometheus.Registerer, next http.Handler) (http.Handler, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "linkguard",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   metrics.DefaultBuckets,
	}, []string{"method", "code"})

	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("could not register request duration histogram: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, fmt.Errorf("could not reuse request duration histogram: %w", err)
		}
		duration = existing
	}

	return promhttp.InstrumentHandlerDuration(duration, next), nil
}
