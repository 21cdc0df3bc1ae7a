package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlatformMetrics records the gateway's calls to the upstream backend.
type PlatformMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewPlatformMetrics registers the upstream call metrics on the provided registerer.
func NewPlatformMetrics(reg prometheus.Registerer) *PlatformMetrics {
	if reg == nil {
		return &PlatformMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "platform_request_duration_seconds",
		Help:    "Duration of upstream platform requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_request_success",
		Help: "Successful upstream platform requests.",
	}, []string{"endpoint"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "platform_request_failure",
		Help: "Failed upstream platform requests.",
	}, []string{"endpoint"})
	reg.MustRegister(duration, success, failure)
	return &PlatformMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records one upstream call outcome for the named endpoint.
func (p *PlatformMetrics) Observe(endpoint string, duration time.Duration, err error) {
	if p == nil || p.duration == nil {
		return
	}
	label := normalizeLabel(endpoint)
	p.duration.WithLabelValues(label).Observe(duration.Seconds())
	if err != nil {
		p.failure.WithLabelValues(label).Inc()
		return
	}
	p.success.WithLabelValues(label).Inc()
}

func normalizeLabel(endpoint string) string {
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
