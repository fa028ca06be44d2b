package worker

import (
	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics tracks in-flight jobs on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}
