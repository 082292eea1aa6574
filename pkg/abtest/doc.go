// Package abtest assigns users to experiment variants deterministically.
//
// Assignment shares its hashing with rollout percentage bucketing
// (pkg/bucket): the same (tenant, user, experiment) triple always lands in
// the same variant, across processes and restarts, with no stored state.
//
//	exp := &abtest.Experiment{
//		ID: "checkout-redesign",
//		Variants: []abtest.Variant{
//			{Name: "control", Weight: 50},
//			{Name: "treatment", Weight: 50},
//		},
//	}
//	variant, err := exp.Assign(tenantID, userID)
package abtest
