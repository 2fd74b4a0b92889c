package tracker

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/imamik/cloudwait/internal/config"
	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/metrics"
	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/clock"
	"github.com/imamik/cloudwait/internal/util/retry"
)

// Tracker runs provider operations to completion.
type Tracker struct {
	client   provider.Client
	timeouts *config.Timeouts
	metrics  *metrics.Recorder
	clock    clock.Clock
	newID    func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMetrics records outcomes in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(t *Tracker) {
		t.metrics = r
	}
}

// WithClock sets the clock used for polling and retry backoff.
func WithClock(clk clock.Clock) Option {
	return func(t *Tracker) {
		t.clock = clk
	}
}

// WithIDGenerator sets the generator of correlation IDs for operations the
// provider reports no ID for.
func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) {
		t.newID = fn
	}
}

// New creates a Tracker. A nil timeouts loads them from the environment.
func New(client provider.Client, timeouts *config.Timeouts, opts ...Option) *Tracker {
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	t := &Tracker{
		client:   client,
		timeouts: timeouts,
		clock:    clock.Real(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// retryOptions narrows retries to transient provider errors.
func (t *Tracker) retryOptions() []retry.Option {
	return []retry.Option{
		retry.WithMaxAttempts(t.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(t.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(t.timeouts.RetryMaxDelay),
		retry.WithMultiplier(t.timeouts.RetryMultiplier),
		retry.WithRetryable(provider.IsTransient),
		retry.WithClock(t.clock),
	}
}

// mutate runs op through the retry wrapper and records the attempt count.
// opts are applied after the configured retry options.
func mutate[T any](ctx context.Context, t *Tracker, operation string, op func() (T, error), opts ...retry.Option) (T, error) {
	attempts := 0
	result, err := retry.DoWithResult(ctx, func() (T, error) {
		attempts++
		return op()
	}, append(t.retryOptions(), opts...)...)
	t.metrics.ObserveRetry(operation, attempts, err)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Info("provider call failed", "operation", operation, "attempts", attempts, "error", err.Error())
	}
	return result, err
}

// await polls p and records the outcome.
func await[S any](ctx context.Context, t *Tracker, p convergence.Policy[S]) poll.Outcome[S] {
	log := logr.FromContextOrDiscard(ctx).WithValues("kind", string(p.Kind))
	out := p.Until(logr.NewContext(ctx, log), poll.WithClock(t.clock))
	t.record(log, p.Kind, out.Kind, out.Attempts, out.Elapsed, out.CorrelationID, out.Err)
	return out
}

// failed builds the outcome of a mutating call that never got to polling.
func failed[S any](t *Tracker, log logr.Logger, p convergence.Policy[S], err error) poll.Outcome[S] {
	out := poll.Outcome[S]{
		Kind:          poll.Failed,
		Name:          p.Name,
		CorrelationID: p.CorrelationID,
		Err:           err,
	}
	t.record(log, p.Kind, out.Kind, 0, 0, out.CorrelationID, err)
	return out
}

func (t *Tracker) record(log logr.Logger, kind convergence.Kind, outcome poll.Kind, attempts int, elapsed time.Duration, correlationID string, err error) {
	t.metrics.ObservePoll(string(kind), outcome.String(), attempts, elapsed)

	kv := []any{"kind", string(kind), "outcome", outcome.String(), "attempts", attempts, "elapsed", elapsed}
	if correlationID != "" {
		kv = append(kv, "correlationID", correlationID)
	}
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	log.V(1).Info("operation finished", kv...)
}

// correlationID returns id, or a generated one when the provider gave none.
func (t *Tracker) correlationID(id string) string {
	if id != "" {
		return id
	}
	return t.newID()
}
