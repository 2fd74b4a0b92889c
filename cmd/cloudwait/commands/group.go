package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cloudwait/cmd/cloudwait/handlers"
	"github.com/imamik/cloudwait/internal/provider"
)

// Group returns the scaling group command group.
func Group(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Change scaling group membership and wait for it",
	}

	var groupID, state string

	attach := &cobra.Command{
		Use:   "attach ID...",
		Short: "Attach instances and wait until they are in service",
		Long: `Attach up to 20 instances to a scaling group and wait until every one of
them is in service.

On Hetzner Cloud the scaling group is a placement group.

Examples:
  cloudwait group attach --group web-asg i-0abc123 i-0def456`,
		Args: cobra.RangeArgs(1, provider.MaxInstancesPerCall),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.GroupAttach(cmd.Context(), *opts, groupID, args)
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID...",
		Short: "Remove instances and wait until they are gone",
		Args:  cobra.RangeArgs(1, provider.MaxInstancesPerCall),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.GroupRemove(cmd.Context(), *opts, groupID, args)
		},
	}

	wait := &cobra.Command{
		Use:   "wait ID...",
		Short: "Wait until instances are group members in a lifecycle state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.GroupWait(cmd.Context(), *opts, groupID, state, args)
		},
	}
	wait.Flags().StringVar(&state, "state", provider.LifecycleInService, "Lifecycle state to wait for")

	for _, sub := range []*cobra.Command{attach, remove, wait} {
		sub.Flags().StringVar(&groupID, "group", "", "Scaling group name or ID")
		_ = sub.MarkFlagRequired("group")
		cmd.AddCommand(sub)
	}

	return cmd
}
