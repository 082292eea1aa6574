// Package bucket provides deterministic user bucketing for progressive
// rollouts and A/B experiments.
//
// Both the rollout engine and the A/B variant assigner need the same
// property: a user must land in the same pseudo-random "percentile" on every
// evaluation, on every process, forever. Implementing the hash twice invites
// the two copies to drift apart, so both call into this package.
//
// The hash is FNV-1a (32-bit) over the identifying fields joined with an
// unambiguous separator, reduced modulo 10 000 and scaled to [0, 100). It is
// order-sensitive, independent of map iteration order or object identity,
// and exhibits avalanche behavior: "user-1", "user-2" and "user-11" land in
// unrelated buckets.
//
//	score := bucket.Score(tenantID, userID, flagKey)
//	eligible := score < currentPercentage
package bucket
