// Package testing provides test utilities, fakes, and fixtures shared by
// package tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - FakeClock: deterministic clock that records every sleep
//   - MockProvider: testify mock of the provider client
//   - Instance/Snapshot/ScalingInstance builders for provider records
//
// Usage:
//
//	clk := testutil.NewFakeClock(time.Unix(0, 0))
//	outcome := poll.Until(ctx, req, poll.WithClock(clk))
//	assert.Equal(t, 3, clk.SleepCount())
package testing
