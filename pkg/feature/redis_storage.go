package feature

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/flagkit/pkg/clock"
)

// RedisStorage is the production Storage adapter backed by a Redis key-value
// store. Records are stored as JSON under namespaced keys:
//
//	flagkit:flag:<flagKey>
//	flagkit:override:<tenantID>:<flagKey>
//	flagkit:killswitch            (global)
//	flagkit:killswitch:<flagKey>  (flag-scoped)
type RedisStorage struct {
	client redis.UniversalClient
	clock  clock.Clock
}

// RedisStorageOption configures RedisStorage.
type RedisStorageOption func(*RedisStorage)

// WithRedisClock sets the time source used for kill-switch activation
// timestamps.
func WithRedisClock(c clock.Clock) RedisStorageOption {
	return func(r *RedisStorage) {
		if c != nil {
			r.clock = c
		}
	}
}

// NewRedisStorage wraps an already-connected Redis client.
func NewRedisStorage(client redis.UniversalClient, opts ...RedisStorageOption) *RedisStorage {
	r := &RedisStorage{
		client: client,
		clock:  clock.System(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func flagRedisKey(flagKey string) string {
	return "flagkit:flag:" + flagKey
}

func overrideRedisKey(tenantID, flagKey string) string {
	return "flagkit:override:" + tenantID + ":" + flagKey
}

func killSwitchRedisKey(flagKey string) string {
	if flagKey == "" {
		return "flagkit:killswitch"
	}
	return "flagkit:killswitch:" + flagKey
}

func redisGet[T any](ctx context.Context, client redis.UniversalClient, key string) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetFlag retrieves a flag definition by key.
func (r *RedisStorage) GetFlag(ctx context.Context, flagKey string) (*FlagDefinition, error) {
	return redisGet[FlagDefinition](ctx, r.client, flagRedisKey(flagKey))
}

// GetTenantOverride retrieves the override for one (tenant, flag) pair.
func (r *RedisStorage) GetTenantOverride(ctx context.Context, tenantID, flagKey string) (*TenantOverride, error) {
	return redisGet[TenantOverride](ctx, r.client, overrideRedisKey(tenantID, flagKey))
}

// GetKillSwitch retrieves the kill-switch for flagKey ("" = global).
func (r *RedisStorage) GetKillSwitch(ctx context.Context, flagKey string) (*KillSwitch, error) {
	return redisGet[KillSwitch](ctx, r.client, killSwitchRedisKey(flagKey))
}

// SetKillSwitch activates or deactivates a kill-switch.
func (r *RedisStorage) SetKillSwitch(ctx context.Context, flagKey string, enabled bool, reason, activatedBy string) error {
	ks := KillSwitch{
		ID:          uuid.New(),
		FlagKey:     flagKey,
		Enabled:     enabled,
		Reason:      reason,
		ActivatedBy: activatedBy,
		ActivatedAt: r.clock.Now(),
	}

	data, err := json.Marshal(ks)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, killSwitchRedisKey(flagKey), data, 0).Err()
}

// SetFlag stores or replaces a flag definition, used by admin tooling.
func (r *RedisStorage) SetFlag(ctx context.Context, flag FlagDefinition) error {
	if flag.ID == uuid.Nil {
		flag.ID = uuid.New()
	}

	data, err := json.Marshal(flag)
	if err != nil {
		return err
	}

	var expiry time.Duration
	if !flag.ExpiresAt.IsZero() {
		expiry = flag.ExpiresAt.Sub(r.clock.Now())
		if expiry <= 0 {
			return r.client.Del(ctx, flagRedisKey(flag.FlagKey)).Err()
		}
	}
	return r.client.Set(ctx, flagRedisKey(flag.FlagKey), data, expiry).Err()
}

// SetOverride stores or replaces a tenant override, used by admin tooling.
func (r *RedisStorage) SetOverride(ctx context.Context, o TenantOverride) error {
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = r.clock.Now()
	}

	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, overrideRedisKey(o.TenantID, o.FlagKey), data, 0).Err()
}

var _ Storage = (*RedisStorage)(nil)
