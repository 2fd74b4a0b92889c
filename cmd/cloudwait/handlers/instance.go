package handlers

import (
	"context"

	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/async"
)

func instanceDetail(i provider.Instance) string {
	return i.Status
}

// InstanceStart starts each instance and waits until it is running.
func InstanceStart(ctx context.Context, opts Options, instanceIDs []string) error {
	return eachInstance(ctx, opts, "instance start", instanceIDs, func(ctx context.Context, s *session, id string) poll.Outcome[provider.Instance] {
		return s.tracker.StartInstanceAndWait(ctx, id)
	})
}

// InstanceWait waits until each instance is running.
func InstanceWait(ctx context.Context, opts Options, instanceIDs []string) error {
	return eachInstance(ctx, opts, "instance wait", instanceIDs, func(ctx context.Context, s *session, id string) poll.Outcome[provider.Instance] {
		return s.tracker.WaitInstanceRunning(ctx, id)
	})
}

// InstanceCreate creates an instance and waits until it is running.
func InstanceCreate(ctx context.Context, opts Options, spec provider.InstanceSpec) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	out := s.tracker.CreateInstanceAndWait(s.context(ctx), spec)
	target := spec.Name
	if out.Last.ID != "" {
		target = out.Last.ID
	}
	return s.finish([]result{newResult("instance create", target, out, instanceDetail)}, out.AsError())
}

func eachInstance(ctx context.Context, opts Options, operation string, ids []string, run func(context.Context, *session, string) poll.Outcome[provider.Instance]) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	return s.finish(forEach(s.context(ctx), s, operation, ids, run, instanceDetail))
}

// forEach runs one wait per ID concurrently. Results keep the order of ids.
// The error joins the errors of every wait that did not converge, each
// prefixed with its ID.
func forEach[S any](ctx context.Context, s *session, operation string, ids []string, run func(context.Context, *session, string) poll.Outcome[S], detail func(S) string) ([]result, error) {
	results := make([]result, len(ids))
	tasks := make([]async.Task, len(ids))
	for i, id := range ids {
		i, id := i, id
		tasks[i] = async.Task{
			Name: id,
			Func: func(ctx context.Context) error {
				out := run(ctx, s, id)
				results[i] = newResult(operation, id, out, detail)
				return out.AsError()
			},
		}
	}
	err := async.Run(ctx, tasks, s.opts.Concurrency)
	return results, err
}
