package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/model"
)

// Refresh triggers recorded on each run
const (
	TriggerStartup = "startup"
	TriggerTimer   = "timer"
	TriggerManual  = "manual"
	TriggerWatch   = "watch"
)

// RunRecorder persists refresh history. Recording failures never fail a refresh.
type RunRecorder interface {
	StartRun(ctx context.Context, run model.RefreshRun) error
	FinishRun(ctx context.Context, run model.RefreshRun) error
}

// runTracker opens and closes history entries for refresh attempts
type runTracker struct {
	recorder RunRecorder
	log      *logger.Logger
	now      func() time.Time
}

func (t *runTracker) begin(ctx context.Context, seq uint64, trigger string) model.RefreshRun {
	run := model.RefreshRun{
		ID:        uuid.New().String(),
		Sequence:  seq,
		Trigger:   trigger,
		Status:    model.RunRunning,
		StartedAt: t.now(),
	}
	if t.recorder != nil {
		if err := t.recorder.StartRun(ctx, run); err != nil {
			t.log.Warn("failed to record refresh start", "run_id", run.ID, "error", err)
		}
	}
	return run
}

func (t *runTracker) finish(ctx context.Context, run model.RefreshRun, status string, snap *model.Snapshot, err error) model.RefreshRun {
	finished := t.now()
	run.FinishedAt = &finished
	run.Status = status
	if snap != nil {
		run.RowsRead = snap.Stats.RowsRead
		run.Records = len(snap.Records)
		run.Dropped = snap.Stats.DroppedTotal()
	}
	if err != nil {
		run.Error = err.Error()
	}

	if t.recorder != nil {
		// the refresh context may already be cancelled on shutdown
		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := t.recorder.FinishRun(recCtx, run); err != nil {
			t.log.Warn("failed to record refresh result", "run_id", run.ID, "error", err)
		}
	}
	return run
}
