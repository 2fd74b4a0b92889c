package poll

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the terminal state of a poll.
type Kind int

const (
	// Converged means every target reached the expected state.
	Converged Kind = iota + 1
	// TimedOut means the budget was exhausted before convergence.
	TimedOut
	// Failed means a fetch returned an error, the request was invalid, or
	// the context was cancelled.
	Failed
)

func (k Kind) String() string {
	switch k {
	case Converged:
		return "converged"
	case TimedOut:
		return "timed_out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrTimeout matches every *TimeoutError via errors.Is.
var ErrTimeout = errors.New("poll timed out")

// Outcome is the result of a poll.
type Outcome[S any] struct {
	Kind          Kind
	Name          string
	CorrelationID string
	Attempts      int           // Number of fetches performed
	Elapsed       time.Duration // Time from the first fetch to the decision
	Last          S             // Last successfully fetched state
	Err           error         // Set when Kind is Failed
}

// OK reports whether the poll converged.
func (o Outcome[S]) OK() bool {
	return o.Kind == Converged
}

// AsError converts a non-converged outcome into an error carrying the
// diagnostics of the outcome. It returns nil for Converged.
func (o Outcome[S]) AsError() error {
	switch o.Kind {
	case Converged:
		return nil
	case TimedOut:
		return &TimeoutError{
			Name:          o.Name,
			CorrelationID: o.CorrelationID,
			Elapsed:       o.Elapsed,
			Attempts:      o.Attempts,
		}
	default:
		return &FailedError{
			Name:          o.Name,
			CorrelationID: o.CorrelationID,
			Elapsed:       o.Elapsed,
			Attempts:      o.Attempts,
			Err:           o.Err,
		}
	}
}

// TimeoutError reports a poll that ran out of budget.
type TimeoutError struct {
	Name          string
	CorrelationID string
	Elapsed       time.Duration
	Attempts      int
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out waiting for %s after %s (%d attempts)", e.Name, e.Elapsed, e.Attempts)
	if e.CorrelationID != "" {
		msg += ", correlation ID " + e.CorrelationID
	}
	return msg
}

// Is makes errors.Is(err, ErrTimeout) true.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// FailedError reports a poll stopped by an error.
type FailedError struct {
	Name          string
	CorrelationID string
	Elapsed       time.Duration
	Attempts      int
	Err           error
}

func (e *FailedError) Error() string {
	msg := fmt.Sprintf("waiting for %s failed after %d attempts", e.Name, e.Attempts)
	if e.CorrelationID != "" {
		msg += " (correlation ID " + e.CorrelationID + ")"
	}
	return msg + ": " + fmt.Sprint(e.Err)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}
