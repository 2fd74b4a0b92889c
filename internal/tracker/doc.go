// Package tracker issues mutating provider calls and waits for the
// resulting state to converge.
//
// Each operation runs in two phases: the mutating call, retried on
// transient provider errors, then a poll with the matching convergence
// policy. Every method returns a poll.Outcome; a failed mutating call yields
// a Failed outcome with zero fetches. Outcomes are logged through the
// context's logr.Logger and recorded in Prometheus metrics.
package tracker
