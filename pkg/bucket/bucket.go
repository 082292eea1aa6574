package bucket

import (
	"hash/fnv"
)

// resolution is the number of discrete buckets the hash space is reduced to
// before scaling to a percentage. 10 000 buckets give two decimal places of
// percentage precision.
const resolution = 10000

// separator keeps field boundaries unambiguous: ("ab","c") and ("a","bc")
// must not hash to the same value. The unit separator never appears in
// tenant, user, or flag identifiers.
const separator = "\x1f"

// hash32 computes an order-sensitive FNV-1a 32-bit hash over the joined parts.
func hash32(parts []string) uint32 {
	h := fnv.New32a()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte(separator))
		}
		h.Write([]byte(p))
	}
	return h.Sum32()
}

// Score maps the given identifying fields to a stable pseudo-random value in
// [0, 100). The same inputs always produce the same score, across process
// restarts and across ports of this algorithm; near-identical inputs do not
// cluster (FNV-1a avalanche).
//
// Percentage rollouts declare a user eligible iff Score(...) < percentage.
func Score(parts ...string) float64 {
	return float64(hash32(parts)%resolution) / float64(resolution) * 100
}

// Assign maps the given identifying fields to a stable bucket index in
// [0, n). It returns 0 when n <= 0. A/B experiments use Assign with
// cumulative variant weights.
func Assign(n int, parts ...string) int {
	if n <= 0 {
		return 0
	}
	return int(hash32(parts) % uint32(n))
}
