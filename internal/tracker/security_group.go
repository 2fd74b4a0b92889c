package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/poll"
)

// GroupChange is the per-instance result of a security group join or leave.
type GroupChange struct {
	GroupID   string
	Mode      convergence.Mode
	Succeeded []string
	Failed    []string
	Outcomes  map[string]poll.Outcome[[]string]
}

// Err joins the errors of every failed instance, or returns nil.
func (g GroupChange) Err() error {
	var errs []error
	for _, id := range g.Failed {
		errs = append(errs, g.Outcomes[id].AsError())
	}
	return errors.Join(errs...)
}

// JoinSecurityGroupAndWait adds each instance to the security group and
// waits until the membership is visible.
func (t *Tracker) JoinSecurityGroupAndWait(ctx context.Context, instanceIDs []string, groupID string) GroupChange {
	return t.changeSecurityGroup(ctx, instanceIDs, groupID, convergence.Join)
}

// LeaveSecurityGroupAndWait removes each instance from the security group
// and waits until the membership is gone.
func (t *Tracker) LeaveSecurityGroupAndWait(ctx context.Context, instanceIDs []string, groupID string) GroupChange {
	return t.changeSecurityGroup(ctx, instanceIDs, groupID, convergence.Leave)
}

// changeSecurityGroup handles instances one at a time; a failure for one
// instance does not stop the others. Repeated IDs are handled once.
func (t *Tracker) changeSecurityGroup(ctx context.Context, instanceIDs []string, groupID string, mode convergence.Mode) GroupChange {
	instanceIDs = convergence.Distinct(instanceIDs)
	change := GroupChange{
		GroupID:  groupID,
		Mode:     mode,
		Outcomes: make(map[string]poll.Outcome[[]string], len(instanceIDs)),
	}

	for _, instanceID := range instanceIDs {
		out := t.changeOne(ctx, instanceID, groupID, mode)
		change.Outcomes[instanceID] = out
		if out.OK() {
			change.Succeeded = append(change.Succeeded, instanceID)
		} else {
			change.Failed = append(change.Failed, instanceID)
		}
	}
	return change
}

func (t *Tracker) changeOne(ctx context.Context, instanceID, groupID string, mode convergence.Mode) poll.Outcome[[]string] {
	p := convergence.SecurityGroupMembership(t.client, instanceID, groupID, mode,
		convergence.WithInterval(t.timeouts.SecurityGroupInterval),
		convergence.WithTimeout(t.timeouts.SecurityGroupTimeout),
		convergence.WithMaxAttempts(t.timeouts.SecurityGroupMaxAttempts),
		convergence.WithCorrelationID(t.correlationID("")),
	)
	log := logr.FromContextOrDiscard(ctx).WithValues("instance", instanceID, "securityGroup", groupID, "correlationID", p.CorrelationID)
	ctx = logr.NewContext(ctx, log)

	operation := "join_security_group"
	call := t.client.JoinSecurityGroup
	if mode == convergence.Leave {
		operation = "leave_security_group"
		call = t.client.LeaveSecurityGroup
	}

	_, err := mutate(ctx, t, operation, func() (struct{}, error) {
		return struct{}{}, call(ctx, instanceID, groupID)
	})
	if err != nil {
		return failed(t, log, p, fmt.Errorf("failed to %s security group %s for instance %s: %w", mode, groupID, instanceID, err))
	}
	return await(ctx, t, p)
}
