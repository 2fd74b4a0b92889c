package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/cloudwait/internal/provider"
)

// MockProvider is a mock implementation of provider.Client.
// It can be used across all tests that need a scripted provider.
type MockProvider struct {
	mock.Mock
}

var _ provider.Client = (*MockProvider)(nil)

// DescribeInstance returns the scripted instance.
func (m *MockProvider) DescribeInstance(ctx context.Context, instanceID string) (provider.Instance, error) {
	args := m.Called(ctx, instanceID)
	return args.Get(0).(provider.Instance), args.Error(1)
}

// DescribeSnapshot returns the scripted snapshot.
func (m *MockProvider) DescribeSnapshot(ctx context.Context, snapshotID string) (provider.Snapshot, error) {
	args := m.Called(ctx, snapshotID)
	return args.Get(0).(provider.Snapshot), args.Error(1)
}

// DescribeScalingInstances returns the scripted members.
func (m *MockProvider) DescribeScalingInstances(ctx context.Context, groupID string, instanceIDs []string) ([]provider.ScalingInstance, error) {
	args := m.Called(ctx, groupID, instanceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.ScalingInstance), args.Error(1)
}

// DescribeInstanceSecurityGroups returns the scripted group IDs.
func (m *MockProvider) DescribeInstanceSecurityGroups(ctx context.Context, instanceID string) ([]string, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// StartInstance records the call.
func (m *MockProvider) StartInstance(ctx context.Context, instanceID string) error {
	args := m.Called(ctx, instanceID)
	return args.Error(0)
}

// CreateInstance returns the scripted instance ID.
func (m *MockProvider) CreateInstance(ctx context.Context, spec provider.InstanceSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

// CreateImage returns the scripted image ID.
func (m *MockProvider) CreateImage(ctx context.Context, req provider.ImageRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// CreateSnapshot returns the scripted snapshot ID.
func (m *MockProvider) CreateSnapshot(ctx context.Context, diskID, description string) (string, error) {
	args := m.Called(ctx, diskID, description)
	return args.String(0), args.Error(1)
}

// AttachInstances returns the scripted activity.
func (m *MockProvider) AttachInstances(ctx context.Context, groupID string, instanceIDs []string) (provider.Activity, error) {
	args := m.Called(ctx, groupID, instanceIDs)
	return args.Get(0).(provider.Activity), args.Error(1)
}

// RemoveInstances returns the scripted activity.
func (m *MockProvider) RemoveInstances(ctx context.Context, groupID string, instanceIDs []string) (provider.Activity, error) {
	args := m.Called(ctx, groupID, instanceIDs)
	return args.Get(0).(provider.Activity), args.Error(1)
}

// JoinSecurityGroup records the call.
func (m *MockProvider) JoinSecurityGroup(ctx context.Context, instanceID, groupID string) error {
	args := m.Called(ctx, instanceID, groupID)
	return args.Error(0)
}

// LeaveSecurityGroup records the call.
func (m *MockProvider) LeaveSecurityGroup(ctx context.Context, instanceID, groupID string) error {
	args := m.Called(ctx, instanceID, groupID)
	return args.Error(0)
}
