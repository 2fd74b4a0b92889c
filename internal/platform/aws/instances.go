package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/cloudwait/internal/provider"
)

// DescribeInstance returns the instance state and its security groups.
func (c *Client) DescribeInstance(ctx context.Context, instanceID string) (provider.Instance, error) {
	out, err := c.ec2.DescribeInstances(ctx, buildDescribeInstanceInput(instanceID))
	if err != nil {
		return provider.Instance{}, classify(err, "describe instance "+instanceID)
	}
	for _, res := range out.Reservations {
		for _, inst := range res.Instances {
			if aws.ToString(inst.InstanceId) == instanceID {
				return toInstance(inst), nil
			}
		}
	}
	return provider.Instance{}, provider.NotFoundError(provider.CodeInstanceNotFound, "the instance id %s not found", instanceID)
}

// DescribeInstanceSecurityGroups returns the IDs of the instance's security groups.
func (c *Client) DescribeInstanceSecurityGroups(ctx context.Context, instanceID string) ([]string, error) {
	inst, err := c.DescribeInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	return inst.SecurityGroupIDs, nil
}

// StartInstance starts a stopped instance.
func (c *Client) StartInstance(ctx context.Context, instanceID string) error {
	if _, err := c.ec2.StartInstances(ctx, buildStartInput(instanceID)); err != nil {
		return classify(err, "start instance "+instanceID)
	}
	return nil
}

// CreateInstance launches one instance. EC2 boots it without a separate
// start call.
func (c *Client) CreateInstance(ctx context.Context, spec provider.InstanceSpec) (string, error) {
	out, err := c.ec2.RunInstances(ctx, buildRunInstancesInput(spec))
	if err != nil {
		return "", classify(err, "run instance from image "+spec.ImageID)
	}
	if len(out.Instances) == 0 {
		return "", &provider.APIError{Code: "MissingInstance", Message: "run instances returned no instance", Class: provider.ClassUnknown}
	}
	return aws.ToString(out.Instances[0].InstanceId), nil
}

// JoinSecurityGroup adds groupID to the instance's security groups.
func (c *Client) JoinSecurityGroup(ctx context.Context, instanceID, groupID string) error {
	return c.modifyGroups(ctx, instanceID, groupID, true)
}

// LeaveSecurityGroup removes groupID from the instance's security groups.
func (c *Client) LeaveSecurityGroup(ctx context.Context, instanceID, groupID string) error {
	return c.modifyGroups(ctx, instanceID, groupID, false)
}

// modifyGroups replaces the full group set, since EC2 has no incremental
// call for instance security groups.
func (c *Client) modifyGroups(ctx context.Context, instanceID, groupID string, join bool) error {
	current, err := c.DescribeInstanceSecurityGroups(ctx, instanceID)
	if err != nil {
		return err
	}
	in, ok := buildGroupsInput(instanceID, current, groupID, join)
	if !ok {
		return nil
	}
	if _, err := c.ec2.ModifyInstanceAttribute(ctx, in); err != nil {
		return classify(err, fmt.Sprintf("modify security groups of instance %s", instanceID))
	}
	return nil
}

func toInstance(inst ec2types.Instance) provider.Instance {
	out := provider.Instance{ID: aws.ToString(inst.InstanceId)}
	if inst.State != nil {
		out.Status = string(inst.State.Name)
	}
	for _, g := range inst.SecurityGroups {
		if id := aws.ToString(g.GroupId); id != "" {
			out.SecurityGroupIDs = append(out.SecurityGroupIDs, id)
		}
	}
	return out
}
