package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/labels"
)

// CreateImage captures a snapshot image of req.InstanceID. Hetzner Cloud
// cannot assemble an image from existing snapshots, so req.SnapshotIDs only
// end up in the description when none is given.
func (c *Client) CreateImage(ctx context.Context, req provider.ImageRequest) (string, error) {
	if req.InstanceID == "" {
		return "", &provider.APIError{
			Code:    provider.CodeMissingParameter,
			Message: "a source server ID is required to create an image",
			Class:   provider.ClassTerminal,
		}
	}
	id, err := parseID("server", req.InstanceID)
	if err != nil {
		return "", err
	}

	description := req.Description
	if description == "" {
		description = req.Name
	}
	result, _, err := c.client.Server.CreateImage(ctx, &hcloud.Server{ID: id}, &hcloud.ServerCreateImageOpts{
		Type:        hcloud.ImageTypeSnapshot,
		Description: hcloud.Ptr(description),
		Labels:      labels.NewLabelBuilder().WithSource(req.InstanceID).Build(),
	})
	if err != nil {
		return "", classify(err, "create image of server "+req.InstanceID)
	}
	if result.Image == nil {
		return "", &provider.APIError{Code: "MissingImage", Message: "create image returned no image", Class: provider.ClassUnknown}
	}
	return formatID(result.Image.ID), nil
}
