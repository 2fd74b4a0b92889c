package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/util/clock"
)

// ErrInvalidRequest is returned in a Failed outcome when a Request cannot be
// polled without hanging.
var ErrInvalidRequest = errors.New("invalid poll request")

// Request describes one wait.
type Request[S any] struct {
	// Fetch reads the current state. It is called once per tick.
	Fetch func(ctx context.Context) (S, error)
	// Converged reports whether the fetched state is the expected one.
	Converged func(S) bool

	Interval time.Duration
	Timeout  time.Duration

	// MaxAttempts caps the number of fetches beneath Timeout. 0 means no cap.
	MaxAttempts int

	// CorrelationID is attached to the outcome, e.g. a scaling activity ID.
	CorrelationID string
}

// Validate checks the invariants Until relies on.
func (r Request[S]) Validate() error {
	switch {
	case r.Fetch == nil:
		return fmt.Errorf("%w: fetch function is required", ErrInvalidRequest)
	case r.Converged == nil:
		return fmt.Errorf("%w: convergence predicate is required", ErrInvalidRequest)
	case r.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidRequest, r.Interval)
	case r.Timeout < r.Interval:
		return fmt.Errorf("%w: timeout %s is shorter than interval %s", ErrInvalidRequest, r.Timeout, r.Interval)
	case r.MaxAttempts < 0:
		return fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidRequest, r.MaxAttempts)
	}
	return nil
}

type options struct {
	clock clock.Clock
	name  string
}

// Option configures Until.
type Option func(*options)

// WithClock replaces the clock used for elapsed time and sleeping.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// WithName names the awaited condition in logs and errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Until polls req until convergence, timeout, or failure.
//
// A fetch error ends the poll with Failed after exactly the number of fetches
// performed so far. A converging fetch returns immediately without sleeping.
// No fetch is made once the budget is exhausted.
func Until[S any](ctx context.Context, req Request[S], opts ...Option) Outcome[S] {
	o := options{clock: clock.Real(), name: "condition"}
	for _, opt := range opts {
		opt(&o)
	}

	out := Outcome[S]{Name: o.name, CorrelationID: req.CorrelationID}
	if err := req.Validate(); err != nil {
		out.Kind = Failed
		out.Err = err
		return out
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("wait", o.name)
	if req.CorrelationID != "" {
		log = log.WithValues("correlationID", req.CorrelationID)
	}

	start := o.clock.Now()
	remaining := req.Timeout

	for {
		if err := ctx.Err(); err != nil {
			return fail(out, o.clock.Now().Sub(start), fmt.Errorf("wait cancelled: %w", err), log)
		}

		state, err := req.Fetch(ctx)
		out.Attempts++
		out.Elapsed = o.clock.Now().Sub(start)
		if err != nil {
			return fail(out, out.Elapsed, err, log)
		}
		out.Last = state

		if req.Converged(state) {
			out.Kind = Converged
			log.V(1).Info("converged", "attempts", out.Attempts, "elapsed", out.Elapsed)
			return out
		}

		remaining -= req.Interval
		if remaining <= 0 || (req.MaxAttempts > 0 && out.Attempts >= req.MaxAttempts) {
			out.Kind = TimedOut
			log.Info("timed out", "attempts", out.Attempts, "elapsed", out.Elapsed, "timeout", req.Timeout)
			return out
		}

		log.V(1).Info("not converged yet", "attempt", out.Attempts, "remaining", remaining, "next", req.Interval)
		if err := o.clock.Sleep(ctx, req.Interval); err != nil {
			return fail(out, o.clock.Now().Sub(start), fmt.Errorf("wait cancelled: %w", err), log)
		}
	}
}

func fail[S any](out Outcome[S], elapsed time.Duration, err error, log logr.Logger) Outcome[S] {
	out.Kind = Failed
	out.Err = err
	out.Elapsed = elapsed
	log.Info("wait failed", "attempts", out.Attempts, "elapsed", elapsed, "error", err.Error())
	return out
}

// Wait runs Until and returns the last state together with the outcome as an
// error. It is the convenient form for callers that only care about success.
func Wait[S any](ctx context.Context, req Request[S], opts ...Option) (S, error) {
	out := Until(ctx, req, opts...)
	return out.Last, out.AsError()
}
