package aws

import (
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/util/labels"
)

func buildDescribeInstanceInput(instanceID string) *ec2.DescribeInstancesInput {
	return &ec2.DescribeInstancesInput{InstanceIds: []string{instanceID}}
}

func buildStartInput(instanceID string) *ec2.StartInstancesInput {
	return &ec2.StartInstancesInput{InstanceIds: []string{instanceID}}
}

func buildDescribeSnapshotInput(snapshotID string) *ec2.DescribeSnapshotsInput {
	return &ec2.DescribeSnapshotsInput{SnapshotIds: []string{snapshotID}}
}

func buildCreateSnapshotInput(volumeID, description string) *ec2.CreateSnapshotInput {
	in := &ec2.CreateSnapshotInput{
		VolumeId: aws.String(volumeID),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeSnapshot,
			Tags:         labelTags(labels.NewLabelBuilder().WithSource(volumeID)),
		}},
	}
	if description != "" {
		in.Description = aws.String(description)
	}
	return in
}

// Device names for images registered from snapshots. Data disks are named
// /dev/sdb, /dev/sdc and so on.
const (
	rootDeviceName = "/dev/xvda"
	maxDataDisks   = 25
)

// buildRegisterImageInput maps the snapshots of req to EBS block devices,
// the first one as the root device.
func buildRegisterImageInput(req provider.ImageRequest) (*ec2.RegisterImageInput, error) {
	switch {
	case req.Name == "":
		return nil, &provider.APIError{Code: provider.CodeMissingParameter, Message: "image name is required", Class: provider.ClassTerminal}
	case len(req.SnapshotIDs) == 0:
		return nil, &provider.APIError{Code: provider.CodeMissingParameter, Message: "at least one snapshot ID is required", Class: provider.ClassTerminal}
	case len(req.SnapshotIDs) > maxDataDisks+1:
		return nil, &provider.APIError{
			Code:    "InvalidParameterValue",
			Message: fmt.Sprintf("%d snapshots given, at most %d allowed", len(req.SnapshotIDs), maxDataDisks+1),
			Class:   provider.ClassTerminal,
		}
	}

	mappings := make([]ec2types.BlockDeviceMapping, 0, len(req.SnapshotIDs))
	for i, snapshotID := range req.SnapshotIDs {
		device := rootDeviceName
		if i > 0 {
			device = fmt.Sprintf("/dev/sd%c", 'a'+i)
		}
		mappings = append(mappings, ec2types.BlockDeviceMapping{
			DeviceName: aws.String(device),
			Ebs: &ec2types.EbsBlockDevice{
				SnapshotId:          aws.String(snapshotID),
				DeleteOnTermination: aws.Bool(true),
			},
		})
	}

	in := &ec2.RegisterImageInput{
		Name:                aws.String(req.Name),
		Architecture:        ec2types.ArchitectureValuesX8664,
		VirtualizationType:  aws.String("hvm"),
		EnaSupport:          aws.Bool(true),
		RootDeviceName:      aws.String(rootDeviceName),
		BlockDeviceMappings: mappings,
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeImage,
			Tags:         labelTags(labels.NewLabelBuilder().WithSource(req.SnapshotIDs[0])),
		}},
	}
	if req.Description != "" {
		in.Description = aws.String(req.Description)
	}
	return in, nil
}

// buildRunInstancesInput launches exactly one instance. The client token
// makes a retried launch return the instance of the first attempt.
func buildRunInstancesInput(spec provider.InstanceSpec) *ec2.RunInstancesInput {
	lb := labels.NewLabelBuilder().WithCorrelationID(spec.ClientToken)
	tags := labelTags(lb)
	if spec.Name != "" {
		tags = append(tags, ec2types.Tag{Key: aws.String("Name"), Value: aws.String(spec.Name)})
	}

	in := &ec2.RunInstancesInput{
		ImageId:      aws.String(spec.ImageID),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		InstanceType: ec2types.InstanceType(spec.InstanceType),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeInstance,
			Tags:         tags,
		}},
	}
	if spec.ClientToken != "" {
		in.ClientToken = aws.String(spec.ClientToken)
	}
	return in
}

// labelTags converts labels to EC2 tags in key order.
func labelTags(lb *labels.LabelBuilder) []ec2types.Tag {
	values := lb.Build()
	tags := make([]ec2types.Tag, 0, len(values))
	for _, k := range lb.Keys() {
		tags = append(tags, ec2types.Tag{Key: aws.String(k), Value: aws.String(values[k])})
	}
	return tags
}

// buildGroupsInput returns the attribute change replacing the instance's
// security groups with current plus or minus groupID. ok is false when the
// membership already matches and no call is needed.
func buildGroupsInput(instanceID string, current []string, groupID string, join bool) (in *ec2.ModifyInstanceAttributeInput, ok bool) {
	member := slices.Contains(current, groupID)
	if member == join {
		return nil, false
	}

	var groups []string
	if join {
		groups = append(slices.Clone(current), groupID)
	} else {
		groups = slices.DeleteFunc(slices.Clone(current), func(id string) bool { return id == groupID })
	}
	return &ec2.ModifyInstanceAttributeInput{
		InstanceId: aws.String(instanceID),
		Groups:     groups,
	}, true
}

func buildDescribeScalingInput(instanceIDs []string) *autoscaling.DescribeAutoScalingInstancesInput {
	return &autoscaling.DescribeAutoScalingInstancesInput{InstanceIds: slices.Clone(instanceIDs)}
}

func buildAttachInput(groupID string, instanceIDs []string) (*autoscaling.AttachInstancesInput, error) {
	if err := provider.CheckInstanceCount(instanceIDs); err != nil {
		return nil, err
	}
	return &autoscaling.AttachInstancesInput{
		AutoScalingGroupName: aws.String(groupID),
		InstanceIds:          slices.Clone(instanceIDs),
	}, nil
}

func buildDetachInput(groupID string, instanceIDs []string) (*autoscaling.DetachInstancesInput, error) {
	if err := provider.CheckInstanceCount(instanceIDs); err != nil {
		return nil, err
	}
	return &autoscaling.DetachInstancesInput{
		AutoScalingGroupName:           aws.String(groupID),
		InstanceIds:                    slices.Clone(instanceIDs),
		ShouldDecrementDesiredCapacity: aws.Bool(true),
	}, nil
}
