package feature

import "context"

// Storage is the gateway to the durable flag backend. The decision pipeline
// depends only on this interface; MemoryStorage serves tests and operational
// tooling, RedisStorage is the production adapter.
//
// Absence is reported as ErrNotFound (possibly wrapped), never as a nil
// record with a nil error.
type Storage interface {
	// GetFlag retrieves a flag definition by key.
	GetFlag(ctx context.Context, flagKey string) (*FlagDefinition, error)

	// GetTenantOverride retrieves the override for one (tenant, flag) pair.
	GetTenantOverride(ctx context.Context, tenantID, flagKey string) (*TenantOverride, error)

	// GetKillSwitch retrieves the kill-switch scoped to flagKey, or the
	// global kill-switch when flagKey is empty.
	GetKillSwitch(ctx context.Context, flagKey string) (*KillSwitch, error)

	// SetKillSwitch activates or deactivates a kill-switch. An empty
	// flagKey addresses the global switch. This is the write path used by
	// operational tooling; the evaluation path never calls it.
	SetKillSwitch(ctx context.Context, flagKey string, enabled bool, reason, activatedBy string) error
}
