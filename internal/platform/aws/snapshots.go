package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/cloudwait/internal/provider"
)

// DescribeSnapshot returns the snapshot state and progress.
func (c *Client) DescribeSnapshot(ctx context.Context, snapshotID string) (provider.Snapshot, error) {
	out, err := c.ec2.DescribeSnapshots(ctx, buildDescribeSnapshotInput(snapshotID))
	if err != nil {
		return provider.Snapshot{}, classify(err, "describe snapshot "+snapshotID)
	}
	for _, snap := range out.Snapshots {
		if aws.ToString(snap.SnapshotId) == snapshotID {
			return toSnapshot(snap), nil
		}
	}
	return provider.Snapshot{}, provider.NotFoundError(provider.CodeSnapshotNotFound, "the snapshot id %s not found", snapshotID)
}

// CreateSnapshot starts an EBS snapshot of volumeID.
func (c *Client) CreateSnapshot(ctx context.Context, volumeID, description string) (string, error) {
	out, err := c.ec2.CreateSnapshot(ctx, buildCreateSnapshotInput(volumeID, description))
	if err != nil {
		return "", classify(err, "create snapshot of volume "+volumeID)
	}
	return aws.ToString(out.SnapshotId), nil
}

func toSnapshot(snap ec2types.Snapshot) provider.Snapshot {
	return provider.Snapshot{
		ID:       aws.ToString(snap.SnapshotId),
		Status:   string(snap.State),
		Progress: aws.ToString(snap.Progress),
	}
}
