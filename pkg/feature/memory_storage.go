package feature

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/flagkit/pkg/clock"
)

// MemoryStorage is an in-memory Storage implementation for tests and simple
// deployments. It is safe for concurrent use.
type MemoryStorage struct {
	mu        sync.RWMutex
	flags     map[string]FlagDefinition
	overrides map[overrideKey]TenantOverride
	switches  map[string]KillSwitch // keyed by flag key, "" = global
	clock     clock.Clock
}

type overrideKey struct {
	tenantID string
	flagKey  string
}

// MemoryStorageOption configures MemoryStorage.
type MemoryStorageOption func(*MemoryStorage)

// WithStorageClock sets the time source used for kill-switch activation
// timestamps.
func WithStorageClock(c clock.Clock) MemoryStorageOption {
	return func(m *MemoryStorage) {
		if c != nil {
			m.clock = c
		}
	}
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage(opts ...MemoryStorageOption) *MemoryStorage {
	m := &MemoryStorage{
		flags:     make(map[string]FlagDefinition),
		overrides: make(map[overrideKey]TenantOverride),
		switches:  make(map[string]KillSwitch),
		clock:     clock.System(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetFlag retrieves a flag definition by key.
func (m *MemoryStorage) GetFlag(ctx context.Context, flagKey string) (*FlagDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flag, ok := m.flags[flagKey]
	if !ok {
		return nil, ErrNotFound
	}
	return &flag, nil
}

// GetTenantOverride retrieves the override for one (tenant, flag) pair.
func (m *MemoryStorage) GetTenantOverride(ctx context.Context, tenantID, flagKey string) (*TenantOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.overrides[overrideKey{tenantID, flagKey}]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

// GetKillSwitch retrieves the kill-switch for flagKey ("" = global).
func (m *MemoryStorage) GetKillSwitch(ctx context.Context, flagKey string) (*KillSwitch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ks, ok := m.switches[flagKey]
	if !ok {
		return nil, ErrNotFound
	}
	return &ks, nil
}

// SetKillSwitch activates or deactivates a kill-switch.
func (m *MemoryStorage) SetKillSwitch(ctx context.Context, flagKey string, enabled bool, reason, activatedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.switches[flagKey] = KillSwitch{
		ID:          uuid.New(),
		FlagKey:     flagKey,
		Enabled:     enabled,
		Reason:      reason,
		ActivatedBy: activatedBy,
		ActivatedAt: m.clock.Now(),
	}
	return nil
}

// SetFlag stores or replaces a flag definition. Zero IDs are assigned.
func (m *MemoryStorage) SetFlag(flag FlagDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if flag.ID == uuid.Nil {
		flag.ID = uuid.New()
	}
	m.flags[flag.FlagKey] = flag
}

// DeleteFlag removes a flag definition.
func (m *MemoryStorage) DeleteFlag(flagKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flags, flagKey)
}

// SetOverride stores or replaces a tenant override.
func (m *MemoryStorage) SetOverride(o TenantOverride) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = m.clock.Now()
	}
	m.overrides[overrideKey{o.TenantID, o.FlagKey}] = o
}

// DeleteOverride removes a tenant override.
func (m *MemoryStorage) DeleteOverride(tenantID, flagKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, overrideKey{tenantID, flagKey})
}

var _ Storage = (*MemoryStorage)(nil)
