package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/imamik/cloudwait/internal/provider"
)

// DescribeScalingInstances returns the members of groupID among instanceIDs.
// Instances that belong to another group, or to none, are omitted.
func (c *Client) DescribeScalingInstances(ctx context.Context, groupID string, instanceIDs []string) ([]provider.ScalingInstance, error) {
	if len(instanceIDs) == 0 {
		return nil, nil
	}
	out, err := c.autoscaling.DescribeAutoScalingInstances(ctx, buildDescribeScalingInput(instanceIDs))
	if err != nil {
		return nil, classify(err, "describe scaling instances of "+groupID)
	}

	members := make([]provider.ScalingInstance, 0, len(out.AutoScalingInstances))
	for _, inst := range out.AutoScalingInstances {
		if aws.ToString(inst.AutoScalingGroupName) != groupID {
			continue
		}
		members = append(members, provider.ScalingInstance{
			InstanceID:     aws.ToString(inst.InstanceId),
			GroupID:        groupID,
			LifecycleState: aws.ToString(inst.LifecycleState),
			HealthStatus:   aws.ToString(inst.HealthStatus),
		})
	}
	return members, nil
}

// AttachInstances adds up to 20 running instances to the group. Auto
// Scaling does not report an activity for attachments, so the returned
// Activity has no ID.
func (c *Client) AttachInstances(ctx context.Context, groupID string, instanceIDs []string) (provider.Activity, error) {
	in, err := buildAttachInput(groupID, instanceIDs)
	if err != nil {
		return provider.Activity{}, err
	}
	if _, err := c.autoscaling.AttachInstances(ctx, in); err != nil {
		return provider.Activity{}, classify(err, "attach instances to "+groupID)
	}
	return provider.Activity{}, nil
}

// RemoveInstances detaches up to 20 instances from the group, decrementing
// its desired capacity.
func (c *Client) RemoveInstances(ctx context.Context, groupID string, instanceIDs []string) (provider.Activity, error) {
	in, err := buildDetachInput(groupID, instanceIDs)
	if err != nil {
		return provider.Activity{}, err
	}
	out, err := c.autoscaling.DetachInstances(ctx, in)
	if err != nil {
		return provider.Activity{}, classify(err, "detach instances from "+groupID)
	}

	var activity provider.Activity
	if len(out.Activities) > 0 {
		activity.ID = aws.ToString(out.Activities[0].ActivityId)
	}
	return activity, nil
}
