// Package rollout implements time-based progressive rollout with targeting.
//
// A Schedule describes how a flag's enabled percentage grows from an initial
// to a final value across a time window, optionally restricted to business
// hours, a region allow-list, and a conjunction of cohort filters. The
// Engine answers two questions:
//
//   - Eligible: is this subject inside the rollout right now? Every gate is
//     a hard veto, checked in order: time window, business hours, regions,
//     cohort filters, then deterministic percentage bucketing.
//   - Metrics: how far along is the rollout? Current percentage, phase,
//     time to the next phase boundary, and an informational effectiveness
//     score in [0,1].
//
// # Percentage interpolation
//
// Progress through the window is warped through a logistic curve,
// s = 1/(1+e^(-6(r-0.5))), so the rollout ramps slowly at the start,
// accelerates through the middle, and tapers near completion. Before the
// window the percentage is the initial value; at or after the end it is
// exactly the final value.
//
// # Determinism
//
// Per-user inclusion uses pkg/bucket: an FNV-1a hash of
// (tenantID, userID, flagKey[, scheduleID]) scaled to [0,100) and compared
// against the current percentage. For a fixed subject, schedule, and
// wall-clock time the verdict is identical across concurrent and repeated
// calls.
//
// # Robustness
//
// The engine never panics and never fails for malformed-but-structurally-
// valid schedules: negative percentages, phases = 0, inverted dates, and
// non-finite values are clamped into their documented domains. Schedules
// arriving over the wire should be rejected earlier via ParseSchedule or
// Schedule.Validate; that boundary is strict where the engine is lenient.
//
// # Business hours
//
// Region strings map to timezones by prefix: "us-*" to America/New_York,
// "eu-*" to Europe/London, "ap-*" to Asia/Tokyo, anything else to the
// configured default. The mapping is a deliberate coarse heuristic carried
// over from the original system and pinned by tests.
package rollout
