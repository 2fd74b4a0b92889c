// Package poll implements the bounded polling loop used to wait for
// eventually-consistent provider state after a mutating call.
//
// [Until] repeatedly fetches a state snapshot and evaluates a convergence
// predicate until the predicate holds, the time budget is exhausted, or the
// fetch fails. Fetch errors are never retried here; compose with the retry
// package when a fetch may fail transiently.
//
// The loop is single-goroutine and blocking. Its only suspension point is the
// sleep between ticks, which is interrupted by context cancellation. Budget
// accounting is tick based: every unsuccessful tick consumes one Interval, so a
// Timeout of n × Interval allows exactly n fetches.
package poll
