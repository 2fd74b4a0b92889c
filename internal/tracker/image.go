package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/imamik/cloudwait/internal/convergence"
	"github.com/imamik/cloudwait/internal/poll"
	"github.com/imamik/cloudwait/internal/provider"
)

// CreateImageFromSnapshotsAndWait waits until every snapshot in
// req.SnapshotIDs is complete and then creates the image. The first
// snapshot that is not ready stops the flow before anything is created.
// A snapshot that times out fails with CodeSnapshotNotReady; provider errors
// such as not-found keep their own code.
//
// On success Last holds the final state of each snapshot and the image ID is
// the outcome's correlation ID. Attempts and Elapsed sum up the snapshot
// waits.
func (t *Tracker) CreateImageFromSnapshotsAndWait(ctx context.Context, req provider.ImageRequest) poll.Outcome[[]provider.Snapshot] {
	req.SnapshotIDs = convergence.Distinct(req.SnapshotIDs)
	log := logr.FromContextOrDiscard(ctx).WithValues("image", req.Name, "snapshots", req.SnapshotIDs)
	ctx = logr.NewContext(ctx, log)

	out := poll.Outcome[[]provider.Snapshot]{
		Kind: poll.Failed,
		Name: "image " + req.Name + " from snapshots " + strings.Join(req.SnapshotIDs, ","),
	}
	if len(req.SnapshotIDs) == 0 {
		out.Err = &provider.APIError{Code: provider.CodeMissingParameter, Message: "at least one snapshot ID is required", Class: provider.ClassTerminal}
		return out
	}

	for _, snapshotID := range req.SnapshotIDs {
		snap := t.WaitSnapshotReady(ctx, snapshotID)
		out.Attempts += snap.Attempts
		out.Elapsed += snap.Elapsed
		if !snap.OK() {
			out.Err = snapshotNotReady(snapshotID, snap)
			log.Info("snapshot not ready, image not created", "snapshot", snapshotID, "outcome", snap.Kind.String())
			return out
		}
		out.Last = append(out.Last, snap.Last)
	}

	imageID, err := mutate(ctx, t, "create_image", func() (string, error) {
		return t.client.CreateImage(ctx, req)
	})
	if err != nil {
		out.Err = fmt.Errorf("failed to create image %s: %w", req.Name, err)
		return out
	}

	log.Info("image created", "imageID", imageID)
	out.Kind = poll.Converged
	out.CorrelationID = imageID
	return out
}

// snapshotNotReady converts the outcome of a snapshot that did not become
// ready into the error stopping the image flow.
func snapshotNotReady(snapshotID string, snap poll.Outcome[provider.Snapshot]) error {
	if snap.Kind == poll.Failed && provider.ErrorCode(snap.Err) != "" {
		return fmt.Errorf("snapshot %s: %w", snapshotID, snap.Err)
	}
	return &provider.APIError{
		Code:    provider.CodeSnapshotNotReady,
		Message: fmt.Sprintf("snapshot %s is not ready (progress %s)", snapshotID, progressOf(snap.Last)),
		Class:   provider.ClassTerminal,
		Err:     snap.AsError(),
	}
}

func progressOf(s provider.Snapshot) string {
	if s.Progress == "" {
		return "unknown"
	}
	return s.Progress
}
