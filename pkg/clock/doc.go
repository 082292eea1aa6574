// Package clock provides an injectable time source for time-dependent logic.
//
// Every component in flagkit that reads "now" (cache TTL checks, rollout
// time-window math, phase interpolation) accepts a clock.Clock instead of
// calling time.Now directly. This keeps evaluation a pure function of
// (context, stored state, current time) and makes expiry and rollout
// progression testable without sleeping.
//
// # Usage
//
//	c := clock.System()              // production
//	m := clock.NewMock(someTime)     // tests
//	m.Advance(101 * time.Millisecond)
//
// Mock is safe for concurrent use; tests may advance time from one goroutine
// while evaluation runs in others.
package clock
