package provider

import "context"

// InstanceDescriber reads instance state.
type InstanceDescriber interface {
	DescribeInstance(ctx context.Context, instanceID string) (Instance, error)
}

// SnapshotDescriber reads snapshot state.
type SnapshotDescriber interface {
	// DescribeSnapshot returns a not-found APIError if the snapshot is unknown.
	DescribeSnapshot(ctx context.Context, snapshotID string) (Snapshot, error)
}

// ScalingInstanceDescriber lists scaling group members.
type ScalingInstanceDescriber interface {
	// DescribeScalingInstances returns the members of groupID whose instance
	// ID is in instanceIDs. Instances that are not members are omitted.
	DescribeScalingInstances(ctx context.Context, groupID string, instanceIDs []string) ([]ScalingInstance, error)
}

// SecurityGroupDescriber lists the security groups an instance belongs to.
type SecurityGroupDescriber interface {
	DescribeInstanceSecurityGroups(ctx context.Context, instanceID string) ([]string, error)
}

// InstanceOperator mutates instance lifecycle.
type InstanceOperator interface {
	StartInstance(ctx context.Context, instanceID string) error
	// CreateInstance launches an instance that boots on its own and returns
	// its ID.
	CreateInstance(ctx context.Context, spec InstanceSpec) (string, error)
}

// SnapshotOperator creates snapshots.
type SnapshotOperator interface {
	// CreateSnapshot starts a snapshot of the given disk and returns its ID.
	CreateSnapshot(ctx context.Context, diskID, description string) (string, error)
}

// ImageOperator creates machine images.
type ImageOperator interface {
	// CreateImage registers an image and returns its ID. The snapshots in
	// req must already be complete.
	CreateImage(ctx context.Context, req ImageRequest) (string, error)
}

// ScalingGroupOperator changes scaling group membership.
type ScalingGroupOperator interface {
	AttachInstances(ctx context.Context, groupID string, instanceIDs []string) (Activity, error)
	RemoveInstances(ctx context.Context, groupID string, instanceIDs []string) (Activity, error)
}

// SecurityGroupOperator changes security group membership.
type SecurityGroupOperator interface {
	JoinSecurityGroup(ctx context.Context, instanceID, groupID string) error
	LeaveSecurityGroup(ctx context.Context, instanceID, groupID string) error
}

// Client is the full provider surface used by the tracker.
type Client interface {
	InstanceDescriber
	SnapshotDescriber
	ScalingInstanceDescriber
	SecurityGroupDescriber
	InstanceOperator
	SnapshotOperator
	ImageOperator
	ScalingGroupOperator
	SecurityGroupOperator
}
