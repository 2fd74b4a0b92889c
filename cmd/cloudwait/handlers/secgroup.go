package handlers

import (
	"context"
	"strings"

	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/tracker"
)

func groupsDetail(groups []string) string {
	return strings.Join(groups, ",")
}

// SecurityGroupChange joins or leaves the security group for each instance
// and waits until the membership is visible.
func SecurityGroupChange(ctx context.Context, opts Options, mode convergence.Mode, groupID string, instanceIDs []string) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	ctx = s.context(ctx)
	var change tracker.GroupChange
	if mode == convergence.Leave {
		change = s.tracker.LeaveSecurityGroupAndWait(ctx, instanceIDs, groupID)
	} else {
		change = s.tracker.JoinSecurityGroupAndWait(ctx, instanceIDs, groupID)
	}

	operation := "secgroup " + string(mode)
	ids := convergence.Distinct(instanceIDs)
	results := make([]result, 0, len(ids))
	for _, id := range ids {
		results = append(results, newResult(operation, id+" "+groupID, change.Outcomes[id], groupsDetail))
	}
	return s.finish(results, change.Err())
}
