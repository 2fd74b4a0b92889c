package provider

import "fmt"

// Lifecycle states of scaling group members.
const (
	LifecycleInService = "InService"
	LifecyclePending   = "Pending"
	LifecycleRemoving  = "Removing"
)

// InstanceStatusRunning is the instance status the running policy waits for.
const InstanceStatusRunning = "running"

// MaxInstancesPerCall bounds the instance IDs accepted by scaling group
// attach and remove calls.
const MaxInstancesPerCall = 20

// Instance is the state of a compute instance needed to evaluate convergence.
type Instance struct {
	ID               string
	Status           string
	SecurityGroupIDs []string
}

// Snapshot is the state of a disk snapshot.
type Snapshot struct {
	ID       string
	Status   string
	Progress string // Provider formatted, e.g. "40%"
}

// ScalingInstance is one member of a scaling group.
type ScalingInstance struct {
	InstanceID     string
	GroupID        string
	LifecycleState string
	HealthStatus   string
}

// Activity identifies an asynchronous scaling activity. ID may be empty when
// the provider does not report one.
type Activity struct {
	ID string
}

// ImageRequest describes a machine image built from completed disk
// snapshots.
type ImageRequest struct {
	Name        string
	Description string
	// SnapshotIDs lists the disk snapshots, root disk first.
	SnapshotIDs []string
	// InstanceID is the source instance for providers that capture images
	// from an instance rather than registering snapshots.
	InstanceID string
}

// InstanceSpec describes an instance to create.
type InstanceSpec struct {
	Name         string
	ImageID      string
	InstanceType string
	// ClientToken makes retried creates idempotent on providers that
	// support it.
	ClientToken string
}

// CheckInstanceCount rejects an empty batch or one larger than
// MaxInstancesPerCall.
func CheckInstanceCount(instanceIDs []string) error {
	switch {
	case len(instanceIDs) == 0:
		return &APIError{Code: CodeMissingParameter, Message: "at least one instance ID is required", Class: ClassTerminal}
	case len(instanceIDs) > MaxInstancesPerCall:
		return &APIError{
			Code:    CodeTooManyInstances,
			Message: fmt.Sprintf("%d instance IDs given, at most %d allowed", len(instanceIDs), MaxInstancesPerCall),
			Class:   ClassTerminal,
		}
	}
	return nil
}
