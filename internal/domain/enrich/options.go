package enrich

import (
	"time"

	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPageLimit caps the events requested per fight.
func WithPageLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.pageLimit = limit
		}
	}
}

// WithSampleSize caps the deaths kept per fight.
func WithSampleSize(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.sample = n
		}
	}
}

// WithWindow sets the half-width of the deep-link window around a death.
func WithWindow(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.window = d
		}
	}
}

// WithRunner replaces the sequential runner, e.g. with a worker pool.
func WithRunner(r Runner) Option {
	return func(e *Engine) {
		if r != nil {
			e.runner = r
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records enrichment counters on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}
