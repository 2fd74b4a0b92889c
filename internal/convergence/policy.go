package convergence

import (
	"context"
	"time"

	"github.com/imamik/cloudwait/internal/poll"
)

// Kind names the operation a policy waits for.
type Kind string

// Supported policy kinds.
const (
	KindInstanceRunning    Kind = "instance_running"
	KindSnapshotReady      Kind = "snapshot_ready"
	KindScalingMembership  Kind = "scaling_membership"
	KindScalingRemoval     Kind = "scaling_removal"
	KindSecurityGroupJoin  Kind = "security_group_join"
	KindSecurityGroupLeave Kind = "security_group_leave"
)

// Policy is a fetch/predicate pair with its timing defaults.
type Policy[S any] struct {
	Kind Kind
	// Name identifies the awaited resource in logs and errors.
	Name string

	Fetch     func(ctx context.Context) (S, error)
	Converged func(S) bool

	Interval      time.Duration
	Timeout       time.Duration
	MaxAttempts   int
	CorrelationID string
}

// Option adjusts a policy after construction.
type Option func(*settings)

type settings struct {
	interval      time.Duration
	timeout       time.Duration
	maxAttempts   int
	correlationID string
}

// WithInterval overrides the poll interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTimeout overrides the time budget. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxAttempts caps the number of fetches. Non-positive values are
// ignored.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithCorrelationID attaches an operation identifier to the outcome.
func WithCorrelationID(id string) Option {
	return func(s *settings) {
		if id != "" {
			s.correlationID = id
		}
	}
}

func apply[S any](p Policy[S], opts []Option) Policy[S] {
	s := settings{interval: p.Interval, timeout: p.Timeout, maxAttempts: p.MaxAttempts, correlationID: p.CorrelationID}
	for _, opt := range opts {
		opt(&s)
	}
	p.Interval = s.interval
	p.Timeout = s.timeout
	p.MaxAttempts = s.maxAttempts
	p.CorrelationID = s.correlationID
	return p
}

// Request builds the poll request for this policy.
func (p Policy[S]) Request() poll.Request[S] {
	return poll.Request[S]{
		Fetch:         p.Fetch,
		Converged:     p.Converged,
		Interval:      p.Interval,
		Timeout:       p.Timeout,
		MaxAttempts:   p.MaxAttempts,
		CorrelationID: p.CorrelationID,
	}
}

// Until polls the policy to completion.
func (p Policy[S]) Until(ctx context.Context, opts ...poll.Option) poll.Outcome[S] {
	opts = append([]poll.Option{poll.WithName(p.Name)}, opts...)
	return poll.Until(ctx, p.Request(), opts...)
}
