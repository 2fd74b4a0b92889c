package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/retry"
)

func (t *Tracker) instancePolicy(instanceID, correlationID string) convergence.Policy[provider.Instance] {
	return convergence.InstanceRunning(t.client, instanceID,
		convergence.WithInterval(t.timeouts.InstanceInterval),
		convergence.WithTimeout(t.timeouts.InstanceTimeout),
		convergence.WithMaxAttempts(t.timeouts.InstanceMaxAttempts),
		convergence.WithCorrelationID(correlationID),
	)
}

// StartInstanceAndWait starts the instance and waits until it is running.
func (t *Tracker) StartInstanceAndWait(ctx context.Context, instanceID string) poll.Outcome[provider.Instance] {
	p := t.instancePolicy(instanceID, t.correlationID(""))
	log := logr.FromContextOrDiscard(ctx).WithValues("instance", instanceID, "correlationID", p.CorrelationID)
	ctx = logr.NewContext(ctx, log)

	_, err := mutate(ctx, t, "start_instance", func() (struct{}, error) {
		return struct{}{}, t.client.StartInstance(ctx, instanceID)
	})
	if err != nil {
		return failed(t, log, p, fmt.Errorf("failed to start instance %s: %w", instanceID, err))
	}
	return await(ctx, t, p)
}

// WaitInstanceRunning waits until the instance is running.
func (t *Tracker) WaitInstanceRunning(ctx context.Context, instanceID string) poll.Outcome[provider.Instance] {
	ctx = logr.NewContext(ctx, logr.FromContextOrDiscard(ctx).WithValues("instance", instanceID))
	return await(ctx, t, t.instancePolicy(instanceID, ""))
}

// createInstanceWaitAttempts bounds the running waits after a create.
const createInstanceWaitAttempts = 3

// CreateInstanceAndWait creates an instance and waits until it is running.
// Providers boot new instances on their own, so there is no start call. A
// new instance may stay invisible or pending longer than one wait, so the
// wait is repeated up to three times when it times out or fails on a
// transient error. The correlation ID doubles as the create call's client
// token unless spec sets one.
func (t *Tracker) CreateInstanceAndWait(ctx context.Context, spec provider.InstanceSpec) poll.Outcome[provider.Instance] {
	correlationID := t.correlationID(spec.ClientToken)
	spec.ClientToken = correlationID
	log := logr.FromContextOrDiscard(ctx).WithValues("name", spec.Name, "correlationID", correlationID)
	ctx = logr.NewContext(ctx, log)

	instanceID, err := mutate(ctx, t, "create_instance", func() (string, error) {
		return t.client.CreateInstance(ctx, spec)
	})
	if err != nil {
		p := t.instancePolicy("", correlationID)
		p.Name = "new instance " + spec.Name
		return failed(t, log, p, fmt.Errorf("failed to create instance %s: %w", spec.Name, err))
	}

	log = log.WithValues("instance", instanceID)
	ctx = logr.NewContext(ctx, log)
	log.Info("instance created")

	p := t.instancePolicy(instanceID, correlationID)
	var out poll.Outcome[provider.Instance]
	_, err = mutate(ctx, t, "wait_instance_running", func() (struct{}, error) {
		out = await(ctx, t, p)
		return struct{}{}, out.AsError()
	}, retry.WithMaxAttempts(createInstanceWaitAttempts), retry.WithRetryable(waitRetryable))
	if err != nil && out.Kind != poll.Failed && ctx.Err() != nil {
		// Cancelled while backing off between waits.
		out.Kind = poll.Failed
		out.Err = err
	}
	return out
}

func waitRetryable(err error) bool {
	return errors.Is(err, poll.ErrTimeout) || provider.IsTransient(err)
}
