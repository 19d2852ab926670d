// Package monitor exposes Prometheus metrics for the API surface and the
// generation engine boundary.
package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts finished HTTP requests by path, method and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modelgate",
		Name:      "http_requests_total",
		Help:      "Finished HTTP requests.",
	}, []string{"path", "method", "status"})

	// GenerationSeconds observes wall time spent inside the generation
	// engine per invocation mode (complete or stream).
	GenerationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modelgate",
		Name:      "generation_seconds",
		Help:      "Generation engine invocation latency.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"mode"})

	// StreamFragmentsTotal counts fragments forwarded to streaming clients.
	StreamFragmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelgate",
		Name:      "stream_fragments_total",
		Help:      "Content deltas emitted over SSE.",
	})
)

// ObserveGeneration records one engine invocation.
func ObserveGeneration(mode string, start time.Time) {
	GenerationSeconds.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
