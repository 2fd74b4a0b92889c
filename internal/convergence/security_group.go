package convergence

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/imamik/cloudwait/internal/provider"
)

// Defaults for SecurityGroupMembership.
const (
	SecurityGroupInterval = 5 * time.Second
	SecurityGroupTimeout  = 2 * time.Minute
)

// Mode selects whether membership should appear or disappear.
type Mode string

// Membership modes.
const (
	Join  Mode = "join"
	Leave Mode = "leave"
)

// ParseMode parses "join" or "leave"/"remove", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "join":
		return Join, nil
	case "leave", "remove":
		return Leave, nil
	default:
		return "", fmt.Errorf("unknown security group mode %q", s)
	}
}

// SecurityGroupMembership waits until groupID appears in (Join) or disappears
// from (Leave) the instance's security groups.
func SecurityGroupMembership(d provider.SecurityGroupDescriber, instanceID, groupID string, mode Mode, opts ...Option) Policy[[]string] {
	kind := KindSecurityGroupJoin
	if mode == Leave {
		kind = KindSecurityGroupLeave
	}

	return apply(Policy[[]string]{
		Kind: kind,
		Name: fmt.Sprintf("instance %s to %s security group %s", instanceID, mode, groupID),
		Fetch: func(ctx context.Context) ([]string, error) {
			return d.DescribeInstanceSecurityGroups(ctx, instanceID)
		},
		Converged: func(groups []string) bool {
			member := slices.Contains(groups, groupID)
			if mode == Leave {
				return !member
			}
			return member
		},
		Interval: SecurityGroupInterval,
		Timeout:  SecurityGroupTimeout,
	}, opts)
}
