package feature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/flagkit/pkg/clock"
	"github.com/dmitrymomot/flagkit/pkg/rollout"
)

// Operation names the pipeline step a recovered failure occurred in.
type Operation string

const (
	OperationKillSwitchCheck     Operation = "kill-switch-check"
	OperationTenantOverrideCheck Operation = "tenant-override-check"
	OperationDefaultValueCheck   Operation = "default-value-check"
	OperationRolloutEvaluation   Operation = "rollout-evaluation"
)

// ErrorReport is the structured record delivered to the error handler for
// every recovered failure. The pipeline reports each failure exactly once
// and then proceeds with the safest fallback for that step.
type ErrorReport struct {
	Operation   Operation
	TenantID    string
	FlagKey     string
	Environment string
	Err         error
	Timestamp   time.Time
}

// ErrorHandler receives recovered-failure reports. It is a pure side
// channel: nothing it does (including panicking) changes the decision.
type ErrorHandler func(ErrorReport)

// Evaluator is the feature-flag decision pipeline. It combines kill
// switches, cached decisions, tenant overrides, rollout eligibility, and
// flag defaults under a strict priority order and always produces a boolean
// for well-formed calls.
//
// The evaluator is stateless per call apart from the decision cache and is
// safe for concurrent use.
type Evaluator struct {
	environment  string
	storage      Storage
	cache        DecisionCache
	cacheTTL     time.Duration
	clock        clock.Clock
	rollout      *rollout.Engine
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// NewEvaluator creates an evaluator bound to one environment. Every
// evaluation context must carry the same environment; a mismatch is a caller
// bug surfaced as ErrEnvironmentMismatch.
func NewEvaluator(environment string, storage Storage, opts ...Option) (*Evaluator, error) {
	if environment == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("environment cannot be empty"))
	}
	if storage == nil {
		return nil, errors.Join(ErrInvalidConfig, errors.New("storage cannot be nil"))
	}

	e := &Evaluator{
		environment: environment,
		storage:     storage,
		cacheTTL:    DefaultCacheTTL,
		clock:       clock.System(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cache == nil {
		e.cache = NewInMemoryCache(WithCacheClock(e.clock))
	}
	if e.rollout == nil {
		e.rollout = rollout.New(rollout.WithClock(e.clock))
	}
	if e.errorHandler == nil {
		e.errorHandler = e.logReport
	}
	return e, nil
}

// Evaluate decides whether the flag is enabled for the caller. The decision
// is cached per (tenant, flag) with the configured TTL.
func (e *Evaluator) Evaluate(ctx context.Context, ec EvaluationContext, flagKey string) (bool, error) {
	return e.EvaluateWithRollout(ctx, ec, flagKey, nil)
}

// EvaluateWithRollout decides whether the flag is enabled, additionally
// gating enabled outcomes through the rollout schedule. A nil schedule
// behaves exactly like Evaluate. Rollout-gated decisions are never cached;
// eligibility depends on the current time and the caller's attributes.
//
// Priority order, first match wins: global kill-switch, flag-scoped
// kill-switch, cached decision (non-rollout calls only), tenant override,
// flag default. A disabled override is authoritative; an enabled override or
// an enabled default is further gated by the schedule. Rollout can never
// enable a flag whose override or default is disabled.
//
// Storage failures at any step are reported to the error handler and the
// pipeline continues with that step's safe fallback. The returned error is
// non-nil only for precondition violations: an empty tenant ID or an
// environment mismatch.
func (e *Evaluator) EvaluateWithRollout(ctx context.Context, ec EvaluationContext, flagKey string, schedule *rollout.Schedule) (bool, error) {
	if ec.TenantID == "" {
		return false, ErrMissingTenantID
	}
	if ec.Environment != e.environment {
		return false, errors.Join(ErrEnvironmentMismatch,
			fmt.Errorf("evaluator is bound to %q, context has %q", e.environment, ec.Environment))
	}

	// Kill switches dominate everything and are never cached.
	if e.killSwitchActive(ctx, ec, flagKey, "") {
		return false, nil
	}
	if e.killSwitchActive(ctx, ec, flagKey, flagKey) {
		return false, nil
	}

	if schedule == nil {
		if value, ok := e.cache.Get(ec.TenantID, flagKey); ok {
			return value, nil
		}
	}

	override, err := e.storage.GetTenantOverride(ctx, ec.TenantID, flagKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		e.report(OperationTenantOverrideCheck, ec, flagKey, err)
		override = nil
	}
	if override != nil {
		if !override.Enabled {
			// Authoritative force-off; rollout cannot resurrect it.
			if schedule == nil {
				e.cache.Set(ec.TenantID, flagKey, false, e.cacheTTL)
			}
			return false, nil
		}
		if schedule == nil {
			e.cache.Set(ec.TenantID, flagKey, true, e.cacheTTL)
			return true, nil
		}
		return e.rolloutVerdict(ec, flagKey, schedule, true), nil
	}

	enabled := false
	flag, err := e.storage.GetFlag(ctx, flagKey)
	switch {
	case err == nil:
		enabled = flag.DefaultEnabled
	case errors.Is(err, ErrNotFound):
		// Unknown flag: safe default, not a failure.
	default:
		e.report(OperationDefaultValueCheck, ec, flagKey, err)
	}

	if schedule == nil {
		e.cache.Set(ec.TenantID, flagKey, enabled, e.cacheTTL)
		return enabled, nil
	}
	if !enabled {
		// Rollout gates, it never promotes a disabled default.
		return false, nil
	}
	return e.rolloutVerdict(ec, flagKey, schedule, true), nil
}

// Invalidate drops the cached decision for one (tenant, flag) pair.
func (e *Evaluator) Invalidate(tenantID, flagKey string) {
	e.cache.Invalidate(tenantID, flagKey)
}

// InvalidateAll drops every cached decision.
func (e *Evaluator) InvalidateAll() {
	e.cache.InvalidateAll()
}

// killSwitchActive checks the kill-switch scoped to scopeKey ("" = global).
// Fetch failures are reported and treated as "no active kill-switch" so an
// unhealthy store cannot force every flag off.
func (e *Evaluator) killSwitchActive(ctx context.Context, ec EvaluationContext, flagKey, scopeKey string) bool {
	ks, err := e.storage.GetKillSwitch(ctx, scopeKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			e.report(OperationKillSwitchCheck, ec, flagKey, err)
		}
		return false
	}
	return ks != nil && ks.Enabled
}

// rolloutVerdict runs the rollout engine and recovers engine failures by
// falling back to the verdict the non-rollout path would have produced.
func (e *Evaluator) rolloutVerdict(ec EvaluationContext, flagKey string, schedule *rollout.Schedule, fallback bool) bool {
	subject := rollout.Subject{
		TenantID: ec.TenantID,
		UserID:   ec.UserID,
		FlagKey:  flagKey,
		Plan:     ec.Plan,
		UserRole: ec.UserRole,
		Region:   ec.Region(),
		Metadata: ec.Metadata,
	}

	eligible, err := e.rollout.Eligible(subject, schedule)
	if err != nil {
		e.report(OperationRolloutEvaluation, ec, flagKey, err)
		return fallback
	}
	return eligible
}

// report delivers a structured failure record to the error handler. Handler
// panics are swallowed: the side channel must never change the decision.
func (e *Evaluator) report(op Operation, ec EvaluationContext, flagKey string, err error) {
	defer func() {
		_ = recover()
	}()

	e.errorHandler(ErrorReport{
		Operation:   op,
		TenantID:    ec.TenantID,
		FlagKey:     flagKey,
		Environment: ec.Environment,
		Err:         err,
		Timestamp:   e.clock.Now(),
	})
}

// logReport is the default error handler.
func (e *Evaluator) logReport(r ErrorReport) {
	e.logger.Warn("feature evaluation step failed",
		slog.String("operation", string(r.Operation)),
		slog.String("tenant_id", r.TenantID),
		slog.String("flag_key", r.FlagKey),
		slog.String("environment", r.Environment),
		slog.Any("error", r.Err),
	)
}
