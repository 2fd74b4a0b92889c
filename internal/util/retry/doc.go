// Package retry provides exponential backoff retry logic for transient failures.
//
// [Do] and [DoWithResult] re-invoke an operation up to a fixed number of
// attempts. The delay before attempt k+1 is InitialDelay × Multiplier^(k−1),
// optionally capped by MaxDelay. The error of the final attempt is returned
// unmodified.
//
// By default every error is retried except those wrapped with [Fatal]. Callers
// that can classify provider errors narrow this with [WithRetryable], e.g.
//
//	err := retry.Do(ctx, op, retry.WithRetryable(provider.IsTransient))
package retry
