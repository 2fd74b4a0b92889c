package hcloud

import (
	"context"
	"fmt"
	"slices"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/cloudwait/internal/provider"
)

// DescribeScalingInstances returns the servers among instanceIDs that belong
// to the placement group, with a lifecycle state derived from their status.
func (c *Client) DescribeScalingInstances(ctx context.Context, groupID string, instanceIDs []string) ([]provider.ScalingInstance, error) {
	pg, err := c.getPlacementGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var members []provider.ScalingInstance
	for _, instanceID := range instanceIDs {
		id, err := parseID("server", instanceID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(pg.Servers, id) {
			continue
		}
		server, _, err := c.client.Server.GetByID(ctx, id)
		if err != nil {
			return nil, classify(err, "get server "+instanceID)
		}
		if server == nil {
			continue
		}
		members = append(members, provider.ScalingInstance{
			InstanceID:     instanceID,
			GroupID:        groupID,
			LifecycleState: lifecycleState(server),
			HealthStatus:   string(server.Status),
		})
	}
	return members, nil
}

// AttachInstances adds the servers to the placement group. The servers must
// be powered off. The activity ID is the first action's ID.
func (c *Client) AttachInstances(ctx context.Context, groupID string, instanceIDs []string) (provider.Activity, error) {
	if err := provider.CheckInstanceCount(instanceIDs); err != nil {
		return provider.Activity{}, err
	}
	pgID, err := parseID("placement group", groupID)
	if err != nil {
		return provider.Activity{}, err
	}

	var activity provider.Activity
	for _, instanceID := range instanceIDs {
		id, err := parseID("server", instanceID)
		if err != nil {
			return activity, err
		}
		action, _, err := c.client.Server.AddToPlacementGroup(ctx, &hcloud.Server{ID: id}, &hcloud.PlacementGroup{ID: pgID})
		if err != nil {
			return activity, classify(err, fmt.Sprintf("add server %s to placement group %s", instanceID, groupID))
		}
		if activity.ID == "" {
			activity.ID = actionID(action)
		}
	}
	return activity, nil
}

// RemoveInstances removes the servers from their placement group.
func (c *Client) RemoveInstances(ctx context.Context, groupID string, instanceIDs []string) (provider.Activity, error) {
	if err := provider.CheckInstanceCount(instanceIDs); err != nil {
		return provider.Activity{}, err
	}

	var activity provider.Activity
	for _, instanceID := range instanceIDs {
		id, err := parseID("server", instanceID)
		if err != nil {
			return activity, err
		}
		action, _, err := c.client.Server.RemoveFromPlacementGroup(ctx, &hcloud.Server{ID: id})
		if err != nil {
			return activity, classify(err, fmt.Sprintf("remove server %s from placement group %s", instanceID, groupID))
		}
		if activity.ID == "" {
			activity.ID = actionID(action)
		}
	}
	return activity, nil
}

func (c *Client) getPlacementGroup(ctx context.Context, groupID string) (*hcloud.PlacementGroup, error) {
	id, err := parseID("placement group", groupID)
	if err != nil {
		return nil, err
	}
	pg, _, err := c.client.PlacementGroup.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "get placement group "+groupID)
	}
	if pg == nil {
		return nil, provider.NotFoundError("PlacementGroupNotFound", "the placement group %s not found", groupID)
	}
	return pg, nil
}

func lifecycleState(server *hcloud.Server) string {
	if server.Status == hcloud.ServerStatusRunning {
		return provider.LifecycleInService
	}
	return provider.LifecyclePending
}
