package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/imamik/cloudwait/internal/provider"
)

// CreateImage registers an EBS-backed AMI from completed snapshots.
// req.InstanceID is not used.
func (c *Client) CreateImage(ctx context.Context, req provider.ImageRequest) (string, error) {
	in, err := buildRegisterImageInput(req)
	if err != nil {
		return "", err
	}
	out, err := c.ec2.RegisterImage(ctx, in)
	if err != nil {
		return "", classify(err, "register image "+req.Name)
	}
	return aws.ToString(out.ImageId), nil
}
