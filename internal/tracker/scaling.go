package tracker

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
)

func (t *Tracker) scalingOptions() []convergence.Option {
	return []convergence.Option{
		convergence.WithInterval(t.timeouts.ScalingInterval),
		convergence.WithTimeout(t.timeouts.ScalingTimeout),
		convergence.WithMaxAttempts(t.timeouts.ScalingMaxAttempts),
	}
}

// AttachInstancesAndWait adds up to 20 instances to the scaling group and
// waits until all of them are in service.
func (t *Tracker) AttachInstancesAndWait(ctx context.Context, groupID string, instanceIDs []string) poll.Outcome[[]provider.ScalingInstance] {
	log := logr.FromContextOrDiscard(ctx).WithValues("group", groupID, "instances", instanceIDs)
	ctx = logr.NewContext(ctx, log)

	if err := provider.CheckInstanceCount(instanceIDs); err != nil {
		p := convergence.ScalingMembership(t.client, groupID, instanceIDs, provider.LifecycleInService, "")
		return failed(t, log, p, err)
	}

	activity, err := mutate(ctx, t, "attach_instances", func() (provider.Activity, error) {
		return t.client.AttachInstances(ctx, groupID, instanceIDs)
	})
	if err != nil {
		p := convergence.ScalingMembership(t.client, groupID, instanceIDs, provider.LifecycleInService, "")
		return failed(t, log, p, fmt.Errorf("failed to attach instances to %s: %w", groupID, err))
	}

	p := convergence.ScalingMembership(t.client, groupID, instanceIDs, provider.LifecycleInService,
		t.correlationID(activity.ID), t.scalingOptions()...)
	return await(ctx, t, p)
}

// RemoveInstancesAndWait removes up to 20 instances from the scaling group
// and waits until none of them is listed any more.
func (t *Tracker) RemoveInstancesAndWait(ctx context.Context, groupID string, instanceIDs []string) poll.Outcome[[]provider.ScalingInstance] {
	log := logr.FromContextOrDiscard(ctx).WithValues("group", groupID, "instances", instanceIDs)
	ctx = logr.NewContext(ctx, log)

	if err := provider.CheckInstanceCount(instanceIDs); err != nil {
		return failed(t, log, convergence.ScalingRemoval(t.client, groupID, instanceIDs, ""), err)
	}

	activity, err := mutate(ctx, t, "remove_instances", func() (provider.Activity, error) {
		return t.client.RemoveInstances(ctx, groupID, instanceIDs)
	})
	if err != nil {
		p := convergence.ScalingRemoval(t.client, groupID, instanceIDs, "")
		return failed(t, log, p, fmt.Errorf("failed to remove instances from %s: %w", groupID, err))
	}

	p := convergence.ScalingRemoval(t.client, groupID, instanceIDs,
		t.correlationID(activity.ID), t.scalingOptions()...)
	return await(ctx, t, p)
}

// WaitScalingMembership waits until every instance is a member of the group
// in the given lifecycle state.
func (t *Tracker) WaitScalingMembership(ctx context.Context, groupID string, instanceIDs []string, state string) poll.Outcome[[]provider.ScalingInstance] {
	log := logr.FromContextOrDiscard(ctx).WithValues("group", groupID, "instances", instanceIDs)
	ctx = logr.NewContext(ctx, log)
	if state == "" {
		state = provider.LifecycleInService
	}

	p := convergence.ScalingMembership(t.client, groupID, instanceIDs, state, "", t.scalingOptions()...)
	// An empty target set would converge on the first fetch.
	if err := provider.CheckInstanceCount(convergence.Distinct(instanceIDs)); err != nil {
		return failed(t, log, p, err)
	}
	return await(ctx, t, p)
}
