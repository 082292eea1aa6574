// Package feature implements a multi-tenant feature-flag decision engine.
//
// Given a tenant/user context and a flag key, the Evaluator decides whether
// a feature is enabled by combining emergency kill switches, per-tenant
// overrides, time/percentage-based progressive rollout (pkg/rollout), and
// the flag's default value, with short-TTL memoization of decisions and
// deterministic, repeatable outcomes per user.
//
// # Decision order
//
// First match wins:
//
//  1. Global kill-switch: enabled forces false. Never cached.
//  2. Flag-scoped kill-switch: enabled forces false.
//  3. Cached decision, consulted only when no rollout schedule is supplied.
//  4. Tenant override: disabled is authoritative false; enabled returns true
//     or, with a schedule, the rollout verdict.
//  5. Flag default, gated by the schedule when one is supplied. Rollout can
//     gate an enabled outcome but never promote a disabled one.
//
// # Usage
//
//	storage := feature.NewMemoryStorage()
//	storage.SetFlag(feature.FlagDefinition{FlagKey: "billing_v2_enable"})
//	storage.SetOverride(feature.TenantOverride{
//		TenantID: "test-tenant-1",
//		FlagKey:  "billing_v2_enable",
//		Enabled:  true,
//	})
//
//	evaluator, err := feature.NewEvaluator("development", storage)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	enabled, err := evaluator.Evaluate(ctx, feature.EvaluationContext{
//		TenantID:    "test-tenant-1",
//		Environment: "development",
//	}, "billing_v2_enable")
//
// # Error handling
//
// Evaluation always yields a boolean for well-formed calls: storage and
// rollout failures are reported once to an injectable ErrorHandler as a
// structured ErrorReport and the pipeline falls back to the safest value for
// the failed step (kill-switch fetch failures count as "no active switch",
// override failures as "no override", default-value failures as false,
// rollout failures as the non-rollout verdict). The two returned errors,
// ErrMissingTenantID and ErrEnvironmentMismatch, are caller bugs and fail
// loudly instead.
//
// # Storage
//
// Durable state lives behind the Storage interface. MemoryStorage backs
// tests and small deployments; RedisStorage is the production adapter over
// a Redis key-value store. The evaluator never writes flag state; its only
// side effect is decision-cache population.
//
// # Caching
//
// Decisions are cached per (tenant, flag) pair with a configurable TTL
// (default 5 minutes). Any call carrying a rollout schedule bypasses the
// cache in both directions, because eligibility depends on the clock and on
// caller attributes. Expiry is lazy; there is no background sweep.
package feature
