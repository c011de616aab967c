// Package metrics records build statistics in a Prometheus registry.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "vario"

var _ ports.Metrics = (*Recorder)(nil)

// Config configures the Recorder.
type Config struct {
	// Buckets are the histogram buckets for build duration.
	Buckets []float64
	// Registry receives the collectors. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Option configures the Recorder.
type Option func(*Config)

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Recorder is a goroutine-safe ports.Metrics backed by Prometheus collectors.
type Recorder struct {
	registry      *prometheus.Registry
	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	artifactBytes *prometheus.GaugeVec
	ratio         *prometheus.GaugeVec
}

// New creates a Recorder with its collectors registered.
func New(opts ...Option) *Recorder {
	cfg := Config{Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	factory := promauto.With(cfg.Registry)
	return &Recorder{
		registry: cfg.Registry,
		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Total number of builds by variant and outcome",
		}, []string{"variant", "status"}),

		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Build duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"variant"}),

		artifactBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "artifact_bytes",
			Help:      "Size of the last artifact by variant, raw and gzip-compressed",
		}, []string{"variant", "kind"}),

		ratio: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "artifact_compression_ratio_percent",
			Help:      "Compressed to raw size of the last artifact in percent",
		}, []string{"variant"}),
	}
}

// ObserveBuild records the outcome of one build.
func (r *Recorder) ObserveBuild(variant domain.VariantName, duration time.Duration, size *domain.SizeReport, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.buildsTotal.WithLabelValues(string(variant), status).Inc()
	r.buildDuration.WithLabelValues(string(variant)).Observe(duration.Seconds())

	if size != nil {
		r.artifactBytes.WithLabelValues(string(variant), "raw").Set(float64(size.Raw))
		r.artifactBytes.WithLabelValues(string(variant), "gzip").Set(float64(size.Compressed))
		r.ratio.WithLabelValues(string(variant)).Set(size.Ratio)
	}
}

// WriteTextfile writes the registry in the text exposition format. The file is
// written through a temp file and renamed.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Join(domain.ErrMetricsWriteFailed, zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path))
	}
	return nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
