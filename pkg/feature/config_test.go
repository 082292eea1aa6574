package feature_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("MemoryStorageByDefault", func(t *testing.T) {
		t.Parallel()
		evaluator, err := feature.NewFromConfig(feature.Config{
			Environment: "development",
			CacheTTL:    time.Minute,
		})
		require.NoError(t, err)

		// Unknown flags evaluate to the safe default.
		enabled, err := evaluator.Evaluate(context.Background(), feature.EvaluationContext{
			TenantID:    "tenant-1",
			Environment: "development",
		}, "anything")
		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("InvalidRedisURL", func(t *testing.T) {
		t.Parallel()
		_, err := feature.NewFromConfig(feature.Config{
			Environment: "development",
			RedisURL:    "not-a-redis-url",
		})
		require.ErrorIs(t, err, feature.ErrInvalidConfig)
	})

	t.Run("MissingEnvironment", func(t *testing.T) {
		t.Parallel()
		_, err := feature.NewFromConfig(feature.Config{})
		require.ErrorIs(t, err, feature.ErrInvalidConfig)
	})
}
