package feature

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config is the environment-driven evaluator configuration, loaded with
// pkg/config.
type Config struct {
	// Environment the evaluator is bound to (development, staging, production).
	Environment string `env:"FLAGKIT_ENVIRONMENT,required"`
	// CacheTTL applied when the evaluator populates the decision cache.
	CacheTTL time.Duration `env:"FLAGKIT_CACHE_TTL" envDefault:"5m"`
	// RedisURL selects the Redis storage backend when set; an empty value
	// falls back to in-memory storage.
	RedisURL string `env:"FLAGKIT_REDIS_URL"`
}

// NewFromConfig builds an evaluator from environment configuration. Extra
// options are applied after the config-derived ones and take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Evaluator, error) {
	var storage Storage
	if cfg.RedisURL != "" {
		redisOpt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		storage = NewRedisStorage(redis.NewClient(redisOpt))
	} else {
		storage = NewMemoryStorage()
	}

	options := append([]Option{WithCacheTTL(cfg.CacheTTL)}, opts...)
	return NewEvaluator(cfg.Environment, storage, options...)
}
