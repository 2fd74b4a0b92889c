package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/cloudwait/cmd/cloudwait/handlers"
	"github.com/imamik/cloudwait/internal/provider"
)

// Snapshot returns the snapshot command group.
func Snapshot(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Create snapshots and images and wait until they are complete",
	}

	var volumeID, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a snapshot and wait until it is complete",
		Long: `Create a snapshot of a volume and wait until its progress reaches 100%.

On Hetzner Cloud the volume is the server whose disk is imaged.

Examples:
  cloudwait snapshot create --volume vol-0abc123 --description nightly
  cloudwait --provider hcloud snapshot create --volume 4711`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SnapshotCreate(cmd.Context(), *opts, volumeID, description)
		},
	}
	create.Flags().StringVar(&volumeID, "volume", "", "Volume (AWS) or server (hcloud) to snapshot")
	create.Flags().StringVar(&description, "description", "", "Snapshot description")
	_ = create.MarkFlagRequired("volume")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "wait ID...",
		Short: "Wait until snapshots are complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.SnapshotWait(cmd.Context(), *opts, args)
		},
	})

	var req provider.ImageRequest
	image := &cobra.Command{
		Use:   "image",
		Short: "Wait for snapshots and create an image from them",
		Long: `Wait until every snapshot is complete, then create an image from them.

The first snapshot that does not complete stops the command with
Snapshot.NotReady before any image is created. On AWS the snapshots are
registered as the image's block devices, the first one as root device. On
Hetzner Cloud the image is captured from --instance.

Examples:
  cloudwait snapshot image --name web --snapshot snap-root --snapshot snap-data
  cloudwait --provider hcloud snapshot image --name web --snapshot 100 --instance 4711`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ImageCreate(cmd.Context(), *opts, req)
		},
	}
	image.Flags().StringVar(&req.Name, "name", "", "Image name")
	image.Flags().StringVar(&req.Description, "description", "", "Image description")
	image.Flags().StringSliceVar(&req.SnapshotIDs, "snapshot", nil, "Snapshot to wait for, root disk first (repeatable)")
	image.Flags().StringVar(&req.InstanceID, "instance", "", "Source server (hcloud)")
	_ = image.MarkFlagRequired("name")
	_ = image.MarkFlagRequired("snapshot")
	cmd.AddCommand(image)

	return cmd
}
