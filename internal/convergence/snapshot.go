package convergence

import (
	"context"
	"strings"
	"time"

	"github.com/imamik/cloudwait/internal/provider"
)

// Defaults for SnapshotReady.
const (
	SnapshotInterval    = 60 * time.Second
	SnapshotTimeout     = 20 * time.Minute
	SnapshotMaxAttempts = 20
)

// snapshotComplete is the progress marker reported by providers for a
// finished snapshot; SnapshotProgressDone is what callers see afterwards.
const (
	snapshotComplete     = "100%"
	SnapshotProgressDone = "100"
)

// SnapshotReady waits until the snapshot progress contains "100%". The fetch
// count is capped at SnapshotMaxAttempts beneath the timeout. An unknown
// snapshot fails the wait immediately. The converged snapshot's Progress is
// normalized to "100".
func SnapshotReady(d provider.SnapshotDescriber, snapshotID string, opts ...Option) Policy[provider.Snapshot] {
	return apply(Policy[provider.Snapshot]{
		Kind: KindSnapshotReady,
		Name: "snapshot " + snapshotID,
		Fetch: func(ctx context.Context) (provider.Snapshot, error) {
			snap, err := d.DescribeSnapshot(ctx, snapshotID)
			if err != nil {
				if provider.IsNotFound(err) {
					return provider.Snapshot{}, provider.NotFoundError(provider.CodeSnapshotNotFound, "the snapshot id %s not found", snapshotID)
				}
				return provider.Snapshot{}, err
			}
			if snap.ID == "" {
				return provider.Snapshot{}, provider.NotFoundError(provider.CodeSnapshotNotFound, "the snapshot id %s not found", snapshotID)
			}
			if strings.Contains(snap.Progress, snapshotComplete) {
				snap.Progress = SnapshotProgressDone
			}
			return snap, nil
		},
		Converged: func(snap provider.Snapshot) bool {
			return snap.Progress == SnapshotProgressDone
		},
		Interval:    SnapshotInterval,
		Timeout:     SnapshotTimeout,
		MaxAttempts: SnapshotMaxAttempts,
	}, opts)
}
