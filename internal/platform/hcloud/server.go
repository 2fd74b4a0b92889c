package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/labels"
)

// DescribeInstance returns the server status and its applied firewalls.
func (c *Client) DescribeInstance(ctx context.Context, instanceID string) (provider.Instance, error) {
	server, err := c.getServer(ctx, instanceID)
	if err != nil {
		return provider.Instance{}, err
	}
	return toInstance(server), nil
}

// StartInstance powers the server on.
func (c *Client) StartInstance(ctx context.Context, instanceID string) error {
	id, err := parseID("server", instanceID)
	if err != nil {
		return err
	}
	if _, _, err := c.client.Server.Poweron(ctx, &hcloud.Server{ID: id}); err != nil {
		return classify(err, "power on server "+instanceID)
	}
	return nil
}

// CreateInstance creates a server that powers on once provisioned. Hetzner
// Cloud has no client tokens; a retried create with the same name fails
// with a uniqueness error instead of creating a second server.
func (c *Client) CreateInstance(ctx context.Context, spec provider.InstanceSpec) (string, error) {
	result, _, err := c.client.Server.Create(ctx, hcloud.ServerCreateOpts{
		Name:             spec.Name,
		ServerType:       &hcloud.ServerType{Name: spec.InstanceType},
		Image:            imageRef(spec.ImageID),
		StartAfterCreate: hcloud.Ptr(true),
		Labels:           labels.NewLabelBuilder().WithCorrelationID(spec.ClientToken).Build(),
	})
	if err != nil {
		return "", classify(err, "create server "+spec.Name)
	}
	if result.Server == nil {
		return "", &provider.APIError{Code: "MissingInstance", Message: "create server returned no server", Class: provider.ClassUnknown}
	}
	return formatID(result.Server.ID), nil
}

// imageRef references an image by numeric ID or by name.
func imageRef(image string) *hcloud.Image {
	if id, err := strconv.ParseInt(image, 10, 64); err == nil && id > 0 {
		return &hcloud.Image{ID: id}
	}
	return &hcloud.Image{Name: image}
}

// getServer fetches a server, mapping a missing one to a not-found error.
func (c *Client) getServer(ctx context.Context, instanceID string) (*hcloud.Server, error) {
	id, err := parseID("server", instanceID)
	if err != nil {
		return nil, err
	}
	server, _, err := c.client.Server.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "get server "+instanceID)
	}
	if server == nil {
		return nil, provider.NotFoundError(provider.CodeInstanceNotFound, "the instance id %s not found", instanceID)
	}
	return server, nil
}

func toInstance(server *hcloud.Server) provider.Instance {
	return provider.Instance{
		ID:               formatID(server.ID),
		Status:           string(server.Status),
		SecurityGroupIDs: appliedFirewalls(server),
	}
}

// appliedFirewalls lists the firewalls in effect on the server. Firewalls
// still being applied are left out.
func appliedFirewalls(server *hcloud.Server) []string {
	var ids []string
	for _, fw := range server.PublicNet.Firewalls {
		if fw == nil || fw.Status != hcloud.FirewallStatusApplied {
			continue
		}
		ids = append(ids, formatID(fw.Firewall.ID))
	}
	return ids
}

func actionID(action *hcloud.Action) string {
	if action == nil {
		return ""
	}
	return fmt.Sprintf("%d", action.ID)
}
