// File: internal/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects client-side API metrics on a private registry
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "strata_api_requests_total",
			Help: "Remote API requests by route and response code (0 for transport failures).",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "strata_api_request_duration_seconds",
			Help:    "Remote API request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	r.registry.MustRegister(r.requests, r.duration)
	return r
}

// Observe records one finished request. A statusCode of 0 means no response was received
func (r *Recorder) Observe(route string, statusCode int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	r.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RequestCounter exposes one counter child, mainly for assertions
func (r *Recorder) RequestCounter(route, code string) prometheus.Counter {
	return r.requests.WithLabelValues(route, code)
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile dumps the registry in the text exposition format
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
