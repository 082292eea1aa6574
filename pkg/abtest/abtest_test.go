package abtest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/abtest"
)

func TestAssign(t *testing.T) {
	t.Parallel()

	t.Run("Deterministic", func(t *testing.T) {
		t.Parallel()
		exp := &abtest.Experiment{
			ID: "checkout-redesign",
			Variants: []abtest.Variant{
				{Name: "control", Weight: 50},
				{Name: "treatment", Weight: 50},
			},
		}

		first, err := exp.Assign("tenant-1", "user-42")
		require.NoError(t, err)
		for iter := 0; iter < 100; iter++ {
			again, err := exp.Assign("tenant-1", "user-42")
			require.NoError(t, err)
			assert.Equal(t, first.Name, again.Name)
		}
	})

	t.Run("WeightDistribution", func(t *testing.T) {
		t.Parallel()
		exp := &abtest.Experiment{
			ID: "pricing-page",
			Variants: []abtest.Variant{
				{Name: "control", Weight: 75},
				{Name: "treatment", Weight: 25},
			},
		}

		counts := map[string]int{}
		for i := 0; i < 2000; i++ {
			v, err := exp.Assign("tenant", fmt.Sprintf("user-%d", i))
			require.NoError(t, err)
			counts[v.Name]++
		}

		assert.InDelta(t, 1500, counts["control"], 150)
		assert.InDelta(t, 500, counts["treatment"], 150)
	})

	t.Run("DistinctExperimentsBucketIndependently", func(t *testing.T) {
		t.Parallel()
		a := &abtest.Experiment{ID: "exp-a", Variants: []abtest.Variant{{Name: "x", Weight: 1}, {Name: "y", Weight: 1}}}
		b := &abtest.Experiment{ID: "exp-b", Variants: []abtest.Variant{{Name: "x", Weight: 1}, {Name: "y", Weight: 1}}}

		differs := false
		for i := 0; i < 200; i++ {
			user := fmt.Sprintf("user-%d", i)
			va, err := a.Assign("tenant", user)
			require.NoError(t, err)
			vb, err := b.Assign("tenant", user)
			require.NoError(t, err)
			if va.Name != vb.Name {
				differs = true
				break
			}
		}
		assert.True(t, differs)
	})

	t.Run("ZeroWeightVariantGetsNoTraffic", func(t *testing.T) {
		t.Parallel()
		exp := &abtest.Experiment{
			ID: "dark-launch",
			Variants: []abtest.Variant{
				{Name: "live", Weight: 100},
				{Name: "dormant", Weight: 0},
			},
		}
		for i := 0; i < 500; i++ {
			v, err := exp.Assign("tenant", fmt.Sprintf("user-%d", i))
			require.NoError(t, err)
			assert.Equal(t, "live", v.Name)
		}
	})

	t.Run("NoVariants", func(t *testing.T) {
		t.Parallel()
		exp := &abtest.Experiment{ID: "empty"}
		_, err := exp.Assign("tenant", "user")
		require.ErrorIs(t, err, abtest.ErrNoVariants)
	})

	t.Run("AllWeightsZero", func(t *testing.T) {
		t.Parallel()
		exp := &abtest.Experiment{
			ID:       "stalled",
			Variants: []abtest.Variant{{Name: "a", Weight: 0}, {Name: "b", Weight: -5}},
		}
		_, err := exp.Assign("tenant", "user")
		require.ErrorIs(t, err, abtest.ErrInvalidWeights)
	})
}
