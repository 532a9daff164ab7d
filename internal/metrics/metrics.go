// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Namespace = "cellcount"

	OutcomeKey       = "outcome"
	OutcomeInRange   = "in_range"
	OutcomeOutRange  = "out_of_range"
	OutcomeMalformed = "malformed"

	RouteKey = "route"
	CodeKey  = "code"
)

// Recorder owns the collectors and the registry they are exposed from.
type Recorder struct {
	registry *prometheus.Registry

	Estimates                   *prometheus.CounterVec
	RequestDurationMilliseconds *prometheus.HistogramVec
	ChartCacheHits              prometheus.Counter
	ChartCacheMisses            prometheus.Counter
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Estimates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "estimates_total",
				Help:      "Estimates evaluated, by outcome.",
			},
			[]string{OutcomeKey},
		),
		RequestDurationMilliseconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_milliseconds",
				Help:      "HTTP request latency in milliseconds.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 16),
			},
			[]string{RouteKey, CodeKey},
		),
		ChartCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "chart_cache_hits_total",
			Help:      "Chart renders served from cache.",
		}),
		ChartCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "chart_cache_misses_total",
			Help:      "Chart renders computed.",
		}),
	}
	r.registry.MustRegister(
		r.Estimates,
		r.RequestDurationMilliseconds,
		r.ChartCacheHits,
		r.ChartCacheMisses,
	)
	return r
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordEstimate counts one evaluated query. parsed is false when the input
// was not a number.
func (r *Recorder) RecordEstimate(parsed, inRange bool) {
	if r == nil {
		return
	}
	outcome := OutcomeInRange
	switch {
	case !parsed:
		outcome = OutcomeMalformed
	case !inRange:
		outcome = OutcomeOutRange
	}
	r.Estimates.WithLabelValues(outcome).Inc()
}

// RecordChartCache counts a chart cache lookup.
func (r *Recorder) RecordChartCache(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.ChartCacheHits.Inc()
		return
	}
	r.ChartCacheMisses.Inc()
}

// RecordRequest observes the latency of one request.
func (r *Recorder) RecordRequest(route string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	labels := prometheus.Labels{
		RouteKey: route,
		CodeKey:  strconv.Itoa(code),
	}
	r.RequestDurationMilliseconds.With(labels).Observe(float64(elapsed) / float64(time.Millisecond))
}
