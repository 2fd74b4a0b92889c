package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/cloudwait/internal/provider"
)

// membersDetail summarizes scaling group members as "id:state" pairs.
func membersDetail(members []provider.ScalingInstance) string {
	if len(members) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, fmt.Sprintf("%s:%s", m.InstanceID, m.LifecycleState))
	}
	return strings.Join(parts, ",")
}

func groupTarget(groupID string, instanceIDs []string) string {
	return groupID + " [" + strings.Join(instanceIDs, ",") + "]"
}

// GroupAttach attaches the instances to the scaling group and waits until
// they are in service.
func GroupAttach(ctx context.Context, opts Options, groupID string, instanceIDs []string) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	out := s.tracker.AttachInstancesAndWait(s.context(ctx), groupID, instanceIDs)
	return s.finish([]result{newResult("group attach", groupTarget(groupID, instanceIDs), out, membersDetail)}, out.AsError())
}

// GroupRemove removes the instances from the scaling group and waits until
// none of them is listed.
func GroupRemove(ctx context.Context, opts Options, groupID string, instanceIDs []string) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	out := s.tracker.RemoveInstancesAndWait(s.context(ctx), groupID, instanceIDs)
	return s.finish([]result{newResult("group remove", groupTarget(groupID, instanceIDs), out, membersDetail)}, out.AsError())
}

// GroupWait waits until the instances are members of the scaling group in
// the given lifecycle state.
func GroupWait(ctx context.Context, opts Options, groupID, state string, instanceIDs []string) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	out := s.tracker.WaitScalingMembership(s.context(ctx), groupID, instanceIDs, state)
	return s.finish([]result{newResult("group wait", groupTarget(groupID, instanceIDs), out, membersDetail)}, out.AsError())
}
