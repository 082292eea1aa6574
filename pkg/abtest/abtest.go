package abtest

import (
	"errors"

	"github.com/dmitrymomot/flagkit/pkg/bucket"
)

var (
	// ErrNoVariants indicates an experiment without variants.
	ErrNoVariants = errors.New("experiment has no variants")

	// ErrInvalidWeights indicates variant weights that sum to zero or less.
	ErrInvalidWeights = errors.New("variant weights must sum to a positive value")
)

// Variant is one arm of an experiment. Weight is a relative share; weights
// do not need to sum to any particular total.
type Variant struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Experiment describes an A/B test: a stable identifier and its weighted
// variants.
type Experiment struct {
	ID       string    `json:"id"`
	Variants []Variant `json:"variants"`
}

// Assign deterministically places a user into one of the experiment's
// variants, proportionally to the variant weights. The assignment uses the
// same hashing as rollout percentage bucketing (pkg/bucket), so it is stable
// across processes and repeated calls; variant weights can be rebalanced
// without reshuffling users who stay inside their variant's share.
//
// Variants with non-positive weight receive no traffic.
func (e *Experiment) Assign(tenantID, userID string) (Variant, error) {
	if len(e.Variants) == 0 {
		return Variant{}, ErrNoVariants
	}

	total := 0
	for _, v := range e.Variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total <= 0 {
		return Variant{}, ErrInvalidWeights
	}

	// Score is in [0,100); scale it onto the cumulative weight line.
	point := bucket.Score(tenantID, userID, e.ID) / 100 * float64(total)

	cumulative := 0.0
	for _, v := range e.Variants {
		if v.Weight <= 0 {
			continue
		}
		cumulative += float64(v.Weight)
		if point < cumulative {
			return v, nil
		}
	}

	// Floating-point edge at the top of the line: hand it to the last
	// weighted variant.
	for i := len(e.Variants) - 1; i >= 0; i-- {
		if e.Variants[i].Weight > 0 {
			return e.Variants[i], nil
		}
	}
	return Variant{}, ErrInvalidWeights
}
