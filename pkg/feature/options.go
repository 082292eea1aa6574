package feature

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/flagkit/pkg/clock"
	"github.com/dmitrymomot/flagkit/pkg/rollout"
)

// Option configures the Evaluator.
type Option func(*Evaluator)

// WithCache sets a custom decision cache. Defaults to a fresh InMemoryCache,
// so separate evaluators in one process never share cached decisions.
func WithCache(cache DecisionCache) Option {
	return func(e *Evaluator) {
		if cache != nil {
			e.cache = cache
		}
	}
}

// WithCacheTTL overrides the TTL applied when the evaluator populates the
// cache. Defaults to DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Evaluator) {
		e.cacheTTL = ttl
	}
}

// WithClock sets the time source for error-report timestamps and for the
// default cache and rollout engine.
func WithClock(c clock.Clock) Option {
	return func(e *Evaluator) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithRolloutEngine sets a custom rollout engine, typically to configure
// business hours or the default timezone.
func WithRolloutEngine(engine *rollout.Engine) Option {
	return func(e *Evaluator) {
		if engine != nil {
			e.rollout = engine
		}
	}
}

// WithErrorHandler sets the side channel receiving a structured report for
// every recovered failure. The handler must not block; its panics are
// swallowed so they cannot affect the evaluation result.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(e *Evaluator) {
		if handler != nil {
			e.errorHandler = handler
		}
	}
}

// WithLogger sets the logger used by the default error handler.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}
