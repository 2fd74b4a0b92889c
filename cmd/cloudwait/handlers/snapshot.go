package handlers

import (
	"context"
	"strings"

	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
)

func snapshotDetail(s provider.Snapshot) string {
	return s.Progress
}

// SnapshotCreate snapshots the volume and waits until the snapshot is
// complete.
func SnapshotCreate(ctx context.Context, opts Options, volumeID, description string) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	out := s.tracker.CreateSnapshotAndWait(s.context(ctx), volumeID, description)
	return s.finish([]result{newResult("snapshot create", volumeID, out, snapshotDetail)}, out.AsError())
}

// snapshotsDetail lists the progress of each awaited snapshot.
func snapshotsDetail(snaps []provider.Snapshot) string {
	parts := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		parts = append(parts, snap.ID+":"+snap.Progress)
	}
	return strings.Join(parts, ",")
}

// ImageCreate waits until every snapshot is complete and creates an image
// from them. The image ID is reported as the correlation ID.
func ImageCreate(ctx context.Context, opts Options, req provider.ImageRequest) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	out := s.tracker.CreateImageFromSnapshotsAndWait(s.context(ctx), req)
	return s.finish([]result{newResult("snapshot image", req.Name, out, snapshotsDetail)}, out.AsError())
}

// SnapshotWait waits until each snapshot is complete.
func SnapshotWait(ctx context.Context, opts Options, snapshotIDs []string) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	results, waitErr := forEach(s.context(ctx), s, "snapshot wait", snapshotIDs, func(ctx context.Context, s *session, id string) poll.Outcome[provider.Snapshot] {
		return s.tracker.WaitSnapshotReady(ctx, id)
	}, snapshotDetail)
	return s.finish(results, waitErr)
}
