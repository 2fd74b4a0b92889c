package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/labels"
)

// Snapshot progress reported for image states. Hetzner Cloud exposes no
// percentage on the image itself.
const (
	progressDone    = "100%"
	progressPending = "0%"
)

// CreateSnapshot creates a snapshot image of the server and returns the
// image ID without waiting for it to become available.
func (c *Client) CreateSnapshot(ctx context.Context, serverID, description string) (string, error) {
	id, err := parseID("server", serverID)
	if err != nil {
		return "", err
	}

	result, _, err := c.client.Server.CreateImage(ctx, &hcloud.Server{ID: id}, &hcloud.ServerCreateImageOpts{
		Type:        hcloud.ImageTypeSnapshot,
		Description: hcloud.Ptr(description),
		Labels:      labels.NewLabelBuilder().WithSource(serverID).Build(),
	})
	if err != nil {
		return "", classify(err, "create snapshot of server "+serverID)
	}
	if result.Image == nil {
		return "", &provider.APIError{Code: "MissingImage", Message: "create image returned no image", Class: provider.ClassUnknown}
	}
	return formatID(result.Image.ID), nil
}

// DescribeSnapshot returns the snapshot image status.
func (c *Client) DescribeSnapshot(ctx context.Context, snapshotID string) (provider.Snapshot, error) {
	id, err := parseID("snapshot", snapshotID)
	if err != nil {
		return provider.Snapshot{}, err
	}
	image, _, err := c.client.Image.GetByID(ctx, id)
	if err != nil {
		return provider.Snapshot{}, classify(err, "get image "+snapshotID)
	}
	if image == nil {
		return provider.Snapshot{}, provider.NotFoundError(provider.CodeSnapshotNotFound, "the snapshot id %s not found", snapshotID)
	}
	return toSnapshot(image), nil
}

func toSnapshot(image *hcloud.Image) provider.Snapshot {
	progress := progressPending
	if image.Status == hcloud.ImageStatusAvailable {
		progress = progressDone
	}
	return provider.Snapshot{
		ID:       formatID(image.ID),
		Status:   string(image.Status),
		Progress: progress,
	}
}
