package tracker

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
)

func (t *Tracker) snapshotPolicy(snapshotID string) convergence.Policy[provider.Snapshot] {
	return convergence.SnapshotReady(t.client, snapshotID,
		convergence.WithInterval(t.timeouts.SnapshotInterval),
		convergence.WithTimeout(t.timeouts.SnapshotTimeout),
		convergence.WithMaxAttempts(t.timeouts.SnapshotMaxAttempts),
		convergence.WithCorrelationID(snapshotID),
	)
}

// CreateSnapshotAndWait snapshots the disk and waits until the snapshot is
// complete. The snapshot ID is the outcome's correlation ID.
func (t *Tracker) CreateSnapshotAndWait(ctx context.Context, diskID, description string) poll.Outcome[provider.Snapshot] {
	log := logr.FromContextOrDiscard(ctx).WithValues("disk", diskID)
	ctx = logr.NewContext(ctx, log)

	snapshotID, err := mutate(ctx, t, "create_snapshot", func() (string, error) {
		return t.client.CreateSnapshot(ctx, diskID, description)
	})
	if err != nil {
		p := t.snapshotPolicy("")
		p.Name = "snapshot of disk " + diskID
		return failed(t, log, p, fmt.Errorf("failed to create snapshot of %s: %w", diskID, err))
	}

	log.Info("snapshot created", "snapshot", snapshotID)
	return await(ctx, t, t.snapshotPolicy(snapshotID))
}

// WaitSnapshotReady waits until the snapshot is complete.
func (t *Tracker) WaitSnapshotReady(ctx context.Context, snapshotID string) poll.Outcome[provider.Snapshot] {
	ctx = logr.NewContext(ctx, logr.FromContextOrDiscard(ctx).WithValues("snapshot", snapshotID))
	return await(ctx, t, t.snapshotPolicy(snapshotID))
}
