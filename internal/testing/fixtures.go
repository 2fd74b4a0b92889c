package testing

import (
	"github.com/imamik/cloudwait/internal/provider"
)

// Instance builds an instance record.
func Instance(id, status string, groups ...string) provider.Instance {
	return provider.Instance{ID: id, Status: status, SecurityGroupIDs: groups}
}

// Snapshot builds a snapshot record with the given progress.
func Snapshot(id, progress string) provider.Snapshot {
	status := "progressing"
	if progress == "100%" {
		status = "accomplished"
	}
	return provider.Snapshot{ID: id, Status: status, Progress: progress}
}

// Members builds scaling group members of groupID, all in state.
func Members(groupID, state string, instanceIDs ...string) []provider.ScalingInstance {
	out := make([]provider.ScalingInstance, 0, len(instanceIDs))
	for _, id := range instanceIDs {
		out = append(out, provider.ScalingInstance{
			InstanceID:     id,
			GroupID:        groupID,
			LifecycleState: state,
			HealthStatus:   "Healthy",
		})
	}
	return out
}

// Throttled is a transient provider error.
func Throttled() error {
	return &provider.APIError{Code: "Throttling", Message: "Rate exceeded", Class: provider.ClassTransient}
}

// NotFound is a terminal not-found provider error.
func NotFound(code string) error {
	return &provider.APIError{Code: code, Message: "not found", Class: provider.ClassTerminal, NotFound: true}
}
