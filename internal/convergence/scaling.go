package convergence

import (
	"context"
	"strings"
	"time"

	"github.com/imamik/cloudwait/internal/provider"
)

// Defaults for the scaling group policies.
const (
	ScalingInterval = 5 * time.Second
	ScalingTimeout  = 5 * time.Minute
)

// ScalingMembership waits until every instance in instanceIDs is a member of
// the group in lifecycle state (case-insensitive). Partial convergence keeps
// polling. activityID, if any, becomes the correlation ID.
func ScalingMembership(d provider.ScalingInstanceDescriber, groupID string, instanceIDs []string, state, activityID string, opts ...Option) Policy[[]provider.ScalingInstance] {
	targets := Distinct(instanceIDs)
	opts = append([]Option{WithCorrelationID(activityID)}, opts...)

	return apply(Policy[[]provider.ScalingInstance]{
		Kind: KindScalingMembership,
		Name: "scaling group " + groupID + " members " + state,
		Fetch: func(ctx context.Context) ([]provider.ScalingInstance, error) {
			return d.DescribeScalingInstances(ctx, groupID, targets)
		},
		Converged: func(members []provider.ScalingInstance) bool {
			return countInState(members, targets, state) == len(targets)
		},
		Interval: ScalingInterval,
		Timeout:  ScalingTimeout,
	}, opts)
}

// ScalingRemoval waits until none of instanceIDs is listed as a member of the
// group.
func ScalingRemoval(d provider.ScalingInstanceDescriber, groupID string, instanceIDs []string, activityID string, opts ...Option) Policy[[]provider.ScalingInstance] {
	targets := Distinct(instanceIDs)
	opts = append([]Option{WithCorrelationID(activityID)}, opts...)

	return apply(Policy[[]provider.ScalingInstance]{
		Kind: KindScalingRemoval,
		Name: "scaling group " + groupID + " removal",
		Fetch: func(ctx context.Context) ([]provider.ScalingInstance, error) {
			return d.DescribeScalingInstances(ctx, groupID, targets)
		},
		Converged: func(members []provider.ScalingInstance) bool {
			return len(members) == 0
		},
		Interval: ScalingInterval,
		Timeout:  ScalingTimeout,
	}, opts)
}

// countInState counts distinct targets reported in state. Members outside
// the target set are ignored.
func countInState(members []provider.ScalingInstance, targets []string, state string) int {
	want := make(map[string]struct{}, len(targets))
	for _, id := range targets {
		want[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, ok := want[m.InstanceID]; !ok {
			continue
		}
		if strings.EqualFold(m.LifecycleState, state) {
			seen[m.InstanceID] = struct{}{}
		}
	}
	return len(seen)
}

// Distinct returns ids in first-seen order with duplicates and empty IDs
// removed.
func Distinct(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
