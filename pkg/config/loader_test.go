package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/config"
)

type testConfig struct {
	Name     string        `env:"FLAGKIT_TEST_NAME,required"`
	TTL      time.Duration `env:"FLAGKIT_TEST_TTL" envDefault:"90s"`
	Replicas int           `env:"FLAGKIT_TEST_REPLICAS" envDefault:"3"`
}

func TestLoad(t *testing.T) {
	t.Run("FromEnvironment", func(t *testing.T) {
		t.Setenv("FLAGKIT_TEST_NAME", "decision-engine")
		t.Setenv("FLAGKIT_TEST_TTL", "45s")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "decision-engine", cfg.Name)
		assert.Equal(t, 45*time.Second, cfg.TTL)
		assert.Equal(t, 3, cfg.Replicas)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("NilDestination", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("FLAGKIT_TEST_NAME", "decision-engine")

		var cfg testConfig
		require.NotPanics(t, func() {
			config.MustLoad(&cfg)
		})
		assert.Equal(t, "decision-engine", cfg.Name)
	})

	t.Run("PanicsOnFailure", func(t *testing.T) {
		var cfg testConfig
		require.Panics(t, func() {
			config.MustLoad(&cfg)
		})
	})
}
