package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cloudwait/internal/config"
	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/metrics"
	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
	testutil "github.com/imamik/cloudwait/internal/testing"
)

type fixture struct {
	provider *testutil.MockProvider
	clock    *testutil.FakeClock
	registry *prometheus.Registry
	tracker  *Tracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec, err := metrics.New(reg)
	require.NoError(t, err)

	f := &fixture{
		provider: &testutil.MockProvider{},
		clock:    testutil.NewFakeClock(time.Unix(0, 0)),
		registry: reg,
	}
	f.tracker = New(f.provider, config.TestTimeouts(),
		WithClock(f.clock),
		WithMetrics(rec),
		WithIDGenerator(func() string { return "corr-1" }),
	)
	return f
}

// counter returns the value of the counter whose label values are exactly
// values, in label order.
func counter(t *testing.T, reg *prometheus.Registry, name string, values ...string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := m.GetLabel()
			if len(labels) != len(values) {
				continue
			}
			match := true
			for i, l := range labels {
				if l.GetValue() != values[i] {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestStartInstanceAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("StartInstance", mock.Anything, "i-1").Return(nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-1").Return(testutil.Instance("i-1", "pending"), nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-1").Return(testutil.Instance("i-1", "running"), nil).Once()

	out := f.tracker.StartInstanceAndWait(testutil.TestContext(t), "i-1")

	require.True(t, out.OK(), "outcome: %v", out.AsError())
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, "corr-1", out.CorrelationID)
	assert.Equal(t, "running", out.Last.Status)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, f.clock.Sleeps())
	f.provider.AssertExpectations(t)
}

func TestStartInstanceAndWait_RetriesTransientErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("StartInstance", mock.Anything, "i-1").Return(testutil.Throttled()).Once()
	f.provider.On("StartInstance", mock.Anything, "i-1").Return(nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-1").Return(testutil.Instance("i-1", "running"), nil).Once()

	out := f.tracker.StartInstanceAndWait(testutil.TestContext(t), "i-1")

	require.True(t, out.OK())
	// One backoff sleep, no poll sleep.
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, f.clock.Sleeps())
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_retry_calls_total", "start_instance", "success"))
	f.provider.AssertExpectations(t)
}

func TestStartInstanceAndWait_TerminalErrorSkipsPolling(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("StartInstance", mock.Anything, "i-404").Return(testutil.NotFound(provider.CodeInstanceNotFound)).Once()

	out := f.tracker.StartInstanceAndWait(testutil.TestContext(t), "i-404")

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Equal(t, 0, out.Attempts)
	assert.True(t, provider.IsNotFound(out.Err))
	assert.Empty(t, f.clock.Sleeps())
	f.provider.AssertNotCalled(t, "DescribeInstance", mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_poll_outcomes_total", string(convergence.KindInstanceRunning), "failed"))
}

func TestStartInstanceAndWait_RetriesExhausted(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("StartInstance", mock.Anything, "i-1").Return(testutil.Throttled()).Twice()

	out := f.tracker.StartInstanceAndWait(testutil.TestContext(t), "i-1")

	assert.Equal(t, poll.Failed, out.Kind)
	assert.True(t, provider.IsTransient(out.Err))
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_retry_calls_total", "start_instance", "error"))
	f.provider.AssertExpectations(t)
}

func TestWaitInstanceRunning_TimesOut(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("DescribeInstance", mock.Anything, "i-1").Return(testutil.Instance("i-1", "stopped"), nil)

	out := f.tracker.WaitInstanceRunning(testutil.TestContext(t), "i-1")

	assert.Equal(t, poll.TimedOut, out.Kind)
	assert.Equal(t, 10, out.Attempts)
	assert.Empty(t, out.CorrelationID)
	assert.ErrorIs(t, out.AsError(), poll.ErrTimeout)
}

func TestCreateSnapshotAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("CreateSnapshot", mock.Anything, "vol-1", "nightly").Return("snap-1", nil).Once()
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-1").Return(testutil.Snapshot("snap-1", "50%"), nil).Once()
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-1").Return(testutil.Snapshot("snap-1", "100%"), nil).Once()

	out := f.tracker.CreateSnapshotAndWait(testutil.TestContext(t), "vol-1", "nightly")

	require.True(t, out.OK())
	assert.Equal(t, "snap-1", out.CorrelationID)
	assert.Equal(t, 2, out.Attempts)
	f.provider.AssertExpectations(t)
}

func TestCreateSnapshotAndWait_CreateFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("CreateSnapshot", mock.Anything, "vol-1", "").Return("", errors.New("boom")).Once()

	out := f.tracker.CreateSnapshotAndWait(testutil.TestContext(t), "vol-1", "")

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Contains(t, out.Err.Error(), "vol-1")
	assert.Equal(t, "snapshot of disk vol-1", out.Name)
	// Unclassified errors are not retried.
	f.provider.AssertNumberOfCalls(t, "CreateSnapshot", 1)
}

func TestWaitSnapshotReady_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-x").
		Return(provider.Snapshot{}, testutil.NotFound(provider.CodeSnapshotNotFound)).Once()

	out := f.tracker.WaitSnapshotReady(testutil.TestContext(t), "snap-x")

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Equal(t, provider.CodeSnapshotNotFound, provider.ErrorCode(out.Err))
}

func TestWaitInstanceRunning_MaxAttempts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.tracker.timeouts.InstanceMaxAttempts = 3
	f.provider.On("DescribeInstance", mock.Anything, "i-1").Return(testutil.Instance("i-1", "pending"), nil)

	out := f.tracker.WaitInstanceRunning(testutil.TestContext(t), "i-1")

	assert.Equal(t, poll.TimedOut, out.Kind)
	assert.Equal(t, 3, out.Attempts)
	f.provider.AssertNumberOfCalls(t, "DescribeInstance", 3)
}

func TestCreateImageFromSnapshotsAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-1").Return(testutil.Snapshot("snap-1", "50%"), nil).Once()
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-1").Return(testutil.Snapshot("snap-1", "100%"), nil).Once()
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-2").Return(testutil.Snapshot("snap-2", "100%"), nil).Once()
	f.provider.On("CreateImage", mock.Anything, provider.ImageRequest{
		Name:        "web",
		SnapshotIDs: []string{"snap-1", "snap-2"},
	}).Return("img-1", nil).Once()

	out := f.tracker.CreateImageFromSnapshotsAndWait(testutil.TestContext(t), provider.ImageRequest{
		Name:        "web",
		SnapshotIDs: []string{"snap-1", "snap-2", "snap-1"},
	})

	require.True(t, out.OK(), "outcome: %v", out.AsError())
	assert.Equal(t, "img-1", out.CorrelationID)
	assert.Equal(t, 3, out.Attempts)
	require.Len(t, out.Last, 2)
	assert.Equal(t, "snap-2", out.Last[1].ID)
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_retry_calls_total", "create_image", "success"))
	f.provider.AssertExpectations(t)
}

func TestCreateImageFromSnapshotsAndWait_StopsAtFirstPendingSnapshot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-1").Return(testutil.Snapshot("snap-1", "100%"), nil).Once()
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-2").Return(testutil.Snapshot("snap-2", "40%"), nil)

	out := f.tracker.CreateImageFromSnapshotsAndWait(testutil.TestContext(t), provider.ImageRequest{
		Name:        "web",
		SnapshotIDs: []string{"snap-1", "snap-2", "snap-3"},
	})

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Equal(t, provider.CodeSnapshotNotReady, provider.ErrorCode(out.Err))
	assert.ErrorIs(t, out.Err, poll.ErrTimeout)
	assert.Contains(t, out.Err.Error(), "40%")
	assert.Equal(t, 11, out.Attempts)
	assert.Empty(t, out.CorrelationID)
	f.provider.AssertNotCalled(t, "DescribeSnapshot", mock.Anything, "snap-3")
	f.provider.AssertNotCalled(t, "CreateImage", mock.Anything, mock.Anything)
}

func TestCreateImageFromSnapshotsAndWait_KeepsProviderErrorCode(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-x").
		Return(provider.Snapshot{}, testutil.NotFound(provider.CodeSnapshotNotFound)).Once()

	out := f.tracker.CreateImageFromSnapshotsAndWait(testutil.TestContext(t), provider.ImageRequest{
		Name:        "web",
		SnapshotIDs: []string{"snap-x"},
	})

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Equal(t, provider.CodeSnapshotNotFound, provider.ErrorCode(out.Err))
	assert.True(t, provider.IsNotFound(out.Err))
	f.provider.AssertNotCalled(t, "CreateImage", mock.Anything, mock.Anything)
}

func TestCreateImageFromSnapshotsAndWait_RequiresSnapshots(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	out := f.tracker.CreateImageFromSnapshotsAndWait(testutil.TestContext(t), provider.ImageRequest{
		Name:        "web",
		SnapshotIDs: []string{""},
	})

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Equal(t, provider.CodeMissingParameter, provider.ErrorCode(out.Err))
	assert.Zero(t, out.Attempts)
	f.provider.AssertNotCalled(t, "DescribeSnapshot", mock.Anything, mock.Anything)
}

func TestCreateImageFromSnapshotsAndWait_CreateRetriesTransientErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	req := provider.ImageRequest{Name: "web", SnapshotIDs: []string{"snap-1"}}
	f.provider.On("DescribeSnapshot", mock.Anything, "snap-1").Return(testutil.Snapshot("snap-1", "100%"), nil).Once()
	f.provider.On("CreateImage", mock.Anything, req).Return("", testutil.Throttled()).Once()
	f.provider.On("CreateImage", mock.Anything, req).Return("img-2", nil).Once()

	out := f.tracker.CreateImageFromSnapshotsAndWait(testutil.TestContext(t), req)

	require.True(t, out.OK())
	assert.Equal(t, "img-2", out.CorrelationID)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, f.clock.Sleeps())
	f.provider.AssertExpectations(t)
}

func TestCreateInstanceAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("CreateInstance", mock.Anything, provider.InstanceSpec{
		Name: "web-1", ImageID: "img-1", InstanceType: "small", ClientToken: "corr-1",
	}).Return("i-new", nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-new").Return(testutil.Instance("i-new", "pending"), nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-new").Return(testutil.Instance("i-new", "running"), nil).Once()

	out := f.tracker.CreateInstanceAndWait(testutil.TestContext(t), provider.InstanceSpec{
		Name: "web-1", ImageID: "img-1", InstanceType: "small",
	})

	require.True(t, out.OK(), "outcome: %v", out.AsError())
	assert.Equal(t, "corr-1", out.CorrelationID)
	assert.Equal(t, "i-new", out.Last.ID)
	assert.Equal(t, 2, out.Attempts)
	f.provider.AssertNotCalled(t, "StartInstance", mock.Anything, mock.Anything)
	f.provider.AssertExpectations(t)
}

func TestCreateInstanceAndWait_RepeatsTimedOutWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	spec := provider.InstanceSpec{Name: "web-1", ImageID: "img-1", ClientToken: "token-7"}
	f.provider.On("CreateInstance", mock.Anything, spec).Return("i-new", nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-new").Return(testutil.Instance("i-new", "pending"), nil).Times(10)
	f.provider.On("DescribeInstance", mock.Anything, "i-new").Return(testutil.Instance("i-new", "running"), nil).Once()

	out := f.tracker.CreateInstanceAndWait(testutil.TestContext(t), spec)

	require.True(t, out.OK())
	assert.Equal(t, "token-7", out.CorrelationID)
	assert.Equal(t, 1, out.Attempts)
	// Nine poll sleeps in the first wait, one backoff before the second.
	assert.Len(t, f.clock.Sleeps(), 10)
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_poll_outcomes_total", string(convergence.KindInstanceRunning), "timed_out"))
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_poll_outcomes_total", string(convergence.KindInstanceRunning), "converged"))
	f.provider.AssertNumberOfCalls(t, "CreateInstance", 1)
	f.provider.AssertExpectations(t)
}

func TestCreateInstanceAndWait_GivesUpAfterThreeWaits(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("CreateInstance", mock.Anything, mock.Anything).Return("i-new", nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-new").Return(testutil.Instance("i-new", "pending"), nil)

	out := f.tracker.CreateInstanceAndWait(testutil.TestContext(t), provider.InstanceSpec{Name: "web-1"})

	assert.Equal(t, poll.TimedOut, out.Kind)
	assert.Equal(t, 10, out.Attempts)
	assert.ErrorIs(t, out.AsError(), poll.ErrTimeout)
	f.provider.AssertNumberOfCalls(t, "DescribeInstance", 30)
	assert.Equal(t, 1.0, counter(t, f.registry, "cloudwait_retry_calls_total", "wait_instance_running", "error"))
}

func TestCreateInstanceAndWait_TerminalWaitErrorIsNotRepeated(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("CreateInstance", mock.Anything, mock.Anything).Return("i-new", nil).Once()
	f.provider.On("DescribeInstance", mock.Anything, "i-new").
		Return(provider.Instance{}, testutil.NotFound(provider.CodeInstanceNotFound)).Once()

	out := f.tracker.CreateInstanceAndWait(testutil.TestContext(t), provider.InstanceSpec{Name: "web-1"})

	assert.Equal(t, poll.Failed, out.Kind)
	assert.True(t, provider.IsNotFound(out.Err))
	f.provider.AssertExpectations(t)
}

func TestCreateInstanceAndWait_CreateFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("CreateInstance", mock.Anything, mock.Anything).Return("", testutil.NotFound("InvalidAMIID.NotFound")).Once()

	out := f.tracker.CreateInstanceAndWait(testutil.TestContext(t), provider.InstanceSpec{Name: "web-1", ImageID: "img-x"})

	assert.Equal(t, poll.Failed, out.Kind)
	assert.Equal(t, "new instance web-1", out.Name)
	assert.Equal(t, "corr-1", out.CorrelationID)
	assert.Equal(t, "InvalidAMIID.NotFound", provider.ErrorCode(out.Err))
	f.provider.AssertNotCalled(t, "DescribeInstance", mock.Anything, mock.Anything)
}

func TestAttachInstancesAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ids := []string{"i-1", "i-2"}
	f.provider.On("AttachInstances", mock.Anything, "asg-1", ids).Return(provider.Activity{ID: "act-1"}, nil).Once()
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return(testutil.Members("asg-1", provider.LifecycleInService, "i-1"), nil).Once()
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return(testutil.Members("asg-1", provider.LifecycleInService, "i-1", "i-2"), nil).Once()

	out := f.tracker.AttachInstancesAndWait(testutil.TestContext(t), "asg-1", ids)

	require.True(t, out.OK())
	assert.Equal(t, "act-1", out.CorrelationID)
	assert.Equal(t, 2, out.Attempts)
	f.provider.AssertExpectations(t)
}

func TestAttachInstancesAndWait_GeneratesCorrelationID(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ids := []string{"i-1"}
	f.provider.On("AttachInstances", mock.Anything, "asg-1", ids).Return(provider.Activity{}, nil).Once()
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return(testutil.Members("asg-1", provider.LifecycleInService, "i-1"), nil).Once()

	out := f.tracker.AttachInstancesAndWait(testutil.TestContext(t), "asg-1", ids)

	require.True(t, out.OK())
	assert.Equal(t, "corr-1", out.CorrelationID)
}

func TestAttachInstancesAndWait_RejectsBadCounts(t *testing.T) {
	t.Parallel()

	tooMany := make([]string, provider.MaxInstancesPerCall+1)
	for i := range tooMany {
		tooMany[i] = "i-x"
	}

	tests := []struct {
		name string
		ids  []string
		code string
	}{
		{"empty", nil, provider.CodeMissingParameter},
		{"too many", tooMany, provider.CodeTooManyInstances},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			out := f.tracker.AttachInstancesAndWait(testutil.TestContext(t), "asg-1", tt.ids)

			assert.Equal(t, poll.Failed, out.Kind)
			assert.Equal(t, tt.code, provider.ErrorCode(out.Err))
			f.provider.AssertNotCalled(t, "AttachInstances", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRemoveInstancesAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ids := []string{"i-1"}
	f.provider.On("RemoveInstances", mock.Anything, "asg-1", ids).Return(provider.Activity{ID: "act-9"}, nil).Once()
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return(testutil.Members("asg-1", provider.LifecycleRemoving, "i-1"), nil).Once()
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return([]provider.ScalingInstance{}, nil).Once()

	out := f.tracker.RemoveInstancesAndWait(testutil.TestContext(t), "asg-1", ids)

	require.True(t, out.OK())
	assert.Equal(t, "act-9", out.CorrelationID)
	assert.Equal(t, 2, out.Attempts)
}

func TestWaitScalingMembership_DefaultsToInService(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ids := []string{"i-1"}
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return(testutil.Members("asg-1", provider.LifecyclePending, "i-1"), nil)

	out := f.tracker.WaitScalingMembership(testutil.TestContext(t), "asg-1", ids, "")

	assert.Equal(t, poll.TimedOut, out.Kind)
	assert.Equal(t, 10, out.Attempts)

	out = f.tracker.WaitScalingMembership(testutil.TestContext(t), "asg-1", ids, provider.LifecyclePending)
	assert.True(t, out.OK())
}

func TestWaitScalingMembership_RejectsEmptyTargets(t *testing.T) {
	t.Parallel()

	for _, ids := range [][]string{nil, {}, {""}} {
		f := newFixture(t)

		out := f.tracker.WaitScalingMembership(testutil.TestContext(t), "asg-1", ids, "")

		assert.Equal(t, poll.Failed, out.Kind)
		assert.Equal(t, provider.CodeMissingParameter, provider.ErrorCode(out.Err))
		assert.Zero(t, out.Attempts)
		f.provider.AssertNotCalled(t, "DescribeScalingInstances", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestWaitScalingMembership_MaxAttempts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.tracker.timeouts.ScalingMaxAttempts = 2
	ids := []string{"i-1"}
	f.provider.On("DescribeScalingInstances", mock.Anything, "asg-1", ids).
		Return(testutil.Members("asg-1", provider.LifecyclePending, "i-1"), nil)

	out := f.tracker.WaitScalingMembership(testutil.TestContext(t), "asg-1", ids, "")

	assert.Equal(t, poll.TimedOut, out.Kind)
	assert.Equal(t, 2, out.Attempts)
}

func TestJoinSecurityGroupAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("JoinSecurityGroup", mock.Anything, "i-1", "sg-1").Return(nil).Once()
	f.provider.On("DescribeInstanceSecurityGroups", mock.Anything, "i-1").Return([]string{"sg-0"}, nil).Once()
	f.provider.On("DescribeInstanceSecurityGroups", mock.Anything, "i-1").Return([]string{"sg-0", "sg-1"}, nil).Once()
	f.provider.On("JoinSecurityGroup", mock.Anything, "i-2", "sg-1").Return(testutil.NotFound(provider.CodeInstanceNotFound)).Once()

	change := f.tracker.JoinSecurityGroupAndWait(testutil.TestContext(t), []string{"i-1", "i-2"}, "sg-1")

	assert.Equal(t, []string{"i-1"}, change.Succeeded)
	assert.Equal(t, []string{"i-2"}, change.Failed)
	assert.Equal(t, 2, change.Outcomes["i-1"].Attempts)
	require.Error(t, change.Err())
	assert.True(t, provider.IsNotFound(change.Err()))
	f.provider.AssertExpectations(t)
}

func TestLeaveSecurityGroupAndWait(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("LeaveSecurityGroup", mock.Anything, "i-1", "sg-1").Return(nil).Once()
	f.provider.On("DescribeInstanceSecurityGroups", mock.Anything, "i-1").Return([]string{"sg-0"}, nil).Once()

	change := f.tracker.LeaveSecurityGroupAndWait(testutil.TestContext(t), []string{"i-1"}, "sg-1")

	assert.Equal(t, []string{"i-1"}, change.Succeeded)
	assert.Empty(t, change.Failed)
	assert.NoError(t, change.Err())
	assert.Equal(t, convergence.Leave, change.Mode)
	f.provider.AssertNotCalled(t, "JoinSecurityGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinSecurityGroupAndWait_RepeatedInstances(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.provider.On("JoinSecurityGroup", mock.Anything, "i-1", "sg-1").Return(nil).Once()
	f.provider.On("DescribeInstanceSecurityGroups", mock.Anything, "i-1").Return([]string{"sg-1"}, nil).Once()
	f.provider.On("JoinSecurityGroup", mock.Anything, "i-2", "sg-1").Return(nil).Once()
	f.provider.On("DescribeInstanceSecurityGroups", mock.Anything, "i-2").Return([]string{"sg-1"}, nil).Once()

	change := f.tracker.JoinSecurityGroupAndWait(testutil.TestContext(t), []string{"i-1", "i-2", "i-1"}, "sg-1")

	assert.Equal(t, []string{"i-1", "i-2"}, change.Succeeded)
	assert.Len(t, change.Outcomes, 2)
	f.provider.AssertNumberOfCalls(t, "JoinSecurityGroup", 2)
	f.provider.AssertNumberOfCalls(t, "DescribeInstanceSecurityGroups", 2)
	assert.Equal(t, 2.0, counter(t, f.registry, "cloudwait_retry_calls_total", "join_security_group", "success"))
}

func TestLeaveSecurityGroupAndWait_MaxAttempts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.tracker.timeouts.SecurityGroupMaxAttempts = 1
	f.provider.On("LeaveSecurityGroup", mock.Anything, "i-1", "sg-1").Return(nil).Once()
	f.provider.On("DescribeInstanceSecurityGroups", mock.Anything, "i-1").Return([]string{"sg-1"}, nil)

	change := f.tracker.LeaveSecurityGroupAndWait(testutil.TestContext(t), []string{"i-1"}, "sg-1")

	assert.Equal(t, []string{"i-1"}, change.Failed)
	assert.Equal(t, poll.TimedOut, change.Outcomes["i-1"].Kind)
	assert.Equal(t, 1, change.Outcomes["i-1"].Attempts)
}

func TestNew_NilTimeoutsLoadsDefaults(t *testing.T) {
	t.Parallel()
	tr := New(&testutil.MockProvider{}, nil)

	require.NotNil(t, tr.timeouts)
	assert.NotNil(t, tr.clock)
	assert.NotEmpty(t, tr.newID())
}
