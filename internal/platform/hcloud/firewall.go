package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// DescribeInstanceSecurityGroups returns the IDs of the firewalls applied to
// the server.
func (c *Client) DescribeInstanceSecurityGroups(ctx context.Context, instanceID string) ([]string, error) {
	server, err := c.getServer(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	return appliedFirewalls(server), nil
}

// JoinSecurityGroup applies the firewall to the server.
func (c *Client) JoinSecurityGroup(ctx context.Context, instanceID, groupID string) error {
	firewall, resources, err := firewallResources(instanceID, groupID)
	if err != nil {
		return err
	}
	if _, _, err := c.client.Firewall.ApplyResources(ctx, firewall, resources); err != nil {
		return classify(err, "apply firewall "+groupID+" to server "+instanceID)
	}
	return nil
}

// LeaveSecurityGroup removes the firewall from the server.
func (c *Client) LeaveSecurityGroup(ctx context.Context, instanceID, groupID string) error {
	firewall, resources, err := firewallResources(instanceID, groupID)
	if err != nil {
		return err
	}
	if _, _, err := c.client.Firewall.RemoveResources(ctx, firewall, resources); err != nil {
		return classify(err, "remove firewall "+groupID+" from server "+instanceID)
	}
	return nil
}

func firewallResources(instanceID, groupID string) (*hcloud.Firewall, []hcloud.FirewallResource, error) {
	serverID, err := parseID("server", instanceID)
	if err != nil {
		return nil, nil, err
	}
	firewallID, err := parseID("firewall", groupID)
	if err != nil {
		return nil, nil, err
	}
	return &hcloud.Firewall{ID: firewallID}, []hcloud.FirewallResource{{
		Type:   hcloud.FirewallResourceTypeServer,
		Server: &hcloud.FirewallResourceServer{ID: serverID},
	}}, nil
}
