package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cloudwait/cmd/cloudwait/handlers"
	"github.com/imamik/cloudwait/internal/convergence"
)

// SecurityGroup returns the security group command group.
func SecurityGroup(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secgroup",
		Aliases: []string{"firewall"},
		Short:   "Join or leave security groups and wait for the change",
	}

	var groupID string
	for _, mode := range []convergence.Mode{convergence.Join, convergence.Leave} {
		mode := mode
		sub := &cobra.Command{
			Use:   string(mode) + " ID...",
			Short: "Make instances " + string(mode) + " a security group and wait",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return handlers.SecurityGroupChange(cmd.Context(), *opts, mode, groupID, args)
			},
		}
		sub.Flags().StringVar(&groupID, "group", "", "Security group (AWS) or firewall (hcloud) ID")
		_ = sub.MarkFlagRequired("group")
		cmd.AddCommand(sub)
	}

	return cmd
}
