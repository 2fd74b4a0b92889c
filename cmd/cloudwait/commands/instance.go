package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cloudwait/cmd/cloudwait/handlers"
	"github.com/imamik/cloudwait/internal/provider"
)

// Instance returns the instance command group.
func Instance(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instance",
		Short: "Create or start instances and wait until they are running",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start ID...",
		Short: "Start instances and wait until they are running",
		Long: `Start each instance and wait until the provider reports it as running.

Several IDs are started and awaited in parallel.

Examples:
  cloudwait instance start i-0abc123
  cloudwait --provider hcloud instance start 4711 4712`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.InstanceStart(cmd.Context(), *opts, args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "wait ID...",
		Short: "Wait until instances are running",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.InstanceWait(cmd.Context(), *opts, args)
		},
	})

	var spec provider.InstanceSpec
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an instance and wait until it is running",
		Long: `Create an instance from an image and wait until it is running.

The instance boots on its own. A wait that times out is repeated up to
three times before the command gives up.

Examples:
  cloudwait instance create --name web-1 --image ami-0abc123 --type t3.micro
  cloudwait --provider hcloud instance create --name web-1 --image ubuntu-24.04 --type cx22`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.InstanceCreate(cmd.Context(), *opts, spec)
		},
	}
	create.Flags().StringVar(&spec.Name, "name", "", "Instance name")
	create.Flags().StringVar(&spec.ImageID, "image", "", "Image ID or name")
	create.Flags().StringVar(&spec.InstanceType, "type", "", "Instance type (AWS) or server type (hcloud)")
	create.Flags().StringVar(&spec.ClientToken, "client-token", "", "Idempotency token, generated when empty")
	_ = create.MarkFlagRequired("image")
	_ = create.MarkFlagRequired("type")
	cmd.AddCommand(create)

	return cmd
}
