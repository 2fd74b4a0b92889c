package convergence

import (
	"context"
	"strings"
	"time"

	"github.com/imamik/cloudwait/internal/provider"
)

// Defaults for InstanceRunning.
const (
	InstanceInterval = 30 * time.Second
	InstanceTimeout  = 10 * time.Minute
)

// InstanceRunning waits until the instance status is "running", compared
// case-insensitively.
func InstanceRunning(d provider.InstanceDescriber, instanceID string, opts ...Option) Policy[provider.Instance] {
	return apply(Policy[provider.Instance]{
		Kind: KindInstanceRunning,
		Name: "instance " + instanceID,
		Fetch: func(ctx context.Context) (provider.Instance, error) {
			return d.DescribeInstance(ctx, instanceID)
		},
		Converged: func(inst provider.Instance) bool {
			return strings.EqualFold(inst.Status, provider.InstanceStatusRunning)
		},
		Interval: InstanceInterval,
		Timeout:  InstanceTimeout,
	}, opts)
}
