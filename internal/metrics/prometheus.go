// Package metrics exposes discovery outcomes as Prometheus metrics,
// adapted from the sink/config shape in
// jinterlante1206-AleutianLocal/services/code_buddy/eval/telemetry, scaled
// down to the handful of series a discovery engine actually produces.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailayerhq/sigfind/discovery"
)

// ErrInvalidConfig is returned when the Prometheus configuration is invalid.
var ErrInvalidConfig = errors.New("invalid prometheus configuration")

// ErrRegistrationFailed is returned when metric registration fails.
var ErrRegistrationFailed = errors.New("metric registration failed")

// Config configures the Prometheus recorder.
type Config struct {
	// Namespace is the metrics namespace (e.g. "sigfind"). Required.
	Namespace string
	// Registry is the Prometheus registry to use. If nil, uses
	// prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
	// ScoreBuckets defines histogram buckets for the score distribution. If
	// nil, uses default buckets spanning the engine's 0-to-~1.5 score scale.
	ScoreBuckets []float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Namespace:    "sigfind",
		ScoreBuckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.2, 1.5},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return errors.New("namespace is required")
	}
	return nil
}

// Prometheus is a discovery.Recorder that exports hit/miss counts and a
// score histogram as Prometheus metrics.
type Prometheus struct {
	registry prometheus.Registerer

	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	scores *prometheus.HistogramVec
}

// New creates a Prometheus recorder and registers its collectors.
func New(config *Config) (*Prometheus, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	cfg := *config
	if cfg.ScoreBuckets == nil {
		cfg.ScoreBuckets = DefaultConfig().ScoreBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	p := &Prometheus{registry: registry}

	p.hits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "discover_hits_total",
		Help:      "Discovery calls that found a positive-scoring candidate, by requested kind.",
	}, []string{"kind"})

	p.misses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "discover_misses_total",
		Help:      "Discovery calls that found no positive-scoring candidate, by requested kind.",
	}, []string{"kind"})

	p.scores = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "discover_winning_score",
		Help:      "Score of the winning candidate per successful discovery call.",
		Buckets:   cfg.ScoreBuckets,
	}, []string{"kind"})

	for _, c := range []prometheus.Collector{p.hits, p.misses, p.scores} {
		if err := registry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, errors.Join(ErrRegistrationFailed, err)
			}
		}
	}

	return p, nil
}

// ObserveHit implements discovery.Recorder.
func (p *Prometheus) ObserveHit(sig discovery.Signature, score float64) {
	kind := string(sig.Kind)
	p.hits.WithLabelValues(kind).Inc()
	p.scores.WithLabelValues(kind).Observe(score)
}

// ObserveMiss implements discovery.Recorder.
func (p *Prometheus) ObserveMiss(sig discovery.Signature) {
	p.misses.WithLabelValues(string(sig.Kind)).Inc()
}

var _ discovery.Recorder = (*Prometheus)(nil)
