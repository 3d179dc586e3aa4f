package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/internal/observability"
)

// ErrRefresherStopped is returned once the refresh handle has been stopped.
var ErrRefresherStopped = errors.New("refresher stopped")

// Refresher keeps a SnapshotCell current. At most one refresh runs at a time;
// concurrent callers share the in-flight result.
type Refresher struct {
	cell     *SnapshotCell
	source   SnapshotSource
	interval time.Duration
	log      *logger.Logger
	metrics  *observability.Metrics
	tracker  *runTracker
	now      func() time.Time

	group    singleflight.Group
	inflight sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
	runCtx  context.Context
}

// RefresherOption customizes a Refresher.
type RefresherOption func(*Refresher)

// WithMetrics records refresh outcomes.
func WithMetrics(m *observability.Metrics) RefresherOption {
	return func(r *Refresher) { r.metrics = m }
}

// WithRecorder persists refresh history.
func WithRecorder(rec RunRecorder) RefresherOption {
	return func(r *Refresher) { r.tracker.recorder = rec }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.now = now
		r.tracker.now = now
	}
}

// NewRefresher creates a refresher writing into cell every interval.
func NewRefresher(cell *SnapshotCell, source SnapshotSource, interval time.Duration, log *logger.Logger, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		cell:     cell,
		source:   source,
		interval: interval,
		log:      log.With("component", "refresher"),
		now:      time.Now,
		runCtx:   context.Background(),
	}
	r.tracker = &runTracker{log: r.log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh runs one refresh now, or joins the one in flight. The work itself
// runs under the refresher's own context so an impatient caller does not
// abort it for everybody else.
func (r *Refresher) Refresh(ctx context.Context, trigger string) (*model.Snapshot, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil, ErrRefresherStopped
	}
	runCtx := r.runCtx
	r.mu.Unlock()

	ch := r.group.DoChan("refresh", func() (interface{}, error) {
		r.mu.Lock()
		if r.stopped {
			r.mu.Unlock()
			return nil, ErrRefresherStopped
		}
		r.inflight.Add(1)
		r.mu.Unlock()
		defer r.inflight.Done()

		return r.refresh(runCtx, trigger)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Snapshot), nil
	}
}

func (r *Refresher) refresh(ctx context.Context, trigger string) (*model.Snapshot, error) {
	seq := r.cell.NextSequence()
	run := r.tracker.begin(ctx, seq, trigger)
	start := r.now()

	snap, err := r.source.Ingest(ctx)
	elapsed := r.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil || r.isStopped() {
			r.metrics.RefreshDiscarded()
			r.tracker.finish(ctx, run, model.RunDiscarded, nil, err)
			r.log.Info("refresh abandoned on shutdown", "sequence", seq, "trigger", trigger, "error", err)
			return nil, err
		}
		r.cell.RecordFailure(seq, r.now(), err)
		r.metrics.RefreshFailed(elapsed)
		r.tracker.finish(ctx, run, model.RunFailed, nil, err)
		r.log.Warn("refresh failed, keeping previous snapshot",
			"sequence", seq, "trigger", trigger, "elapsed", elapsed, "error", err)
		return nil, err
	}
	snap.Sequence = seq

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		r.tracker.finish(ctx, run, model.RunDiscarded, snap, ErrRefresherStopped)
		return nil, ErrRefresherStopped
	}
	err = r.cell.Publish(snap)
	r.mu.Unlock()

	if err != nil {
		r.metrics.RefreshDiscarded()
		r.tracker.finish(ctx, run, model.RunDiscarded, snap, err)
		r.log.Info("refresh result discarded", "sequence", seq, "error", err)
		return nil, err
	}

	r.metrics.RefreshSucceeded(elapsed, len(snap.Records), snap.Stats.Dropped, snap.CapturedAt)
	r.tracker.finish(ctx, run, model.RunSucceeded, snap, nil)
	r.log.Info("snapshot published",
		"sequence", seq,
		"trigger", trigger,
		"records", len(snap.Records),
		"dropped", snap.Stats.DroppedTotal(),
		"elapsed", elapsed,
	)

	return snap, nil
}

func (r *Refresher) isStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Start refreshes immediately and then every interval until the handle is
// stopped or ctx is done. A refresher can be started once.
func (r *Refresher) Start(ctx context.Context) *RefreshHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &RefreshHandle{
		refresher: r,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	r.mu.Lock()
	if r.started || r.stopped {
		r.mu.Unlock()
		cancel()
		close(h.done)
		return h
	}
	r.started = true
	r.runCtx = ctx
	r.mu.Unlock()

	go func() {
		defer close(h.done)

		r.tick(ctx, TriggerStartup)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.tick(ctx, TriggerTimer)
			}
		}
	}()

	return h
}

func (r *Refresher) tick(ctx context.Context, trigger string) {
	if _, err := r.Refresh(ctx, trigger); err != nil && ctx.Err() == nil {
		r.log.Debug("scheduled refresh did not publish", "trigger", trigger, "error", err)
	}
}

// RefreshHandle controls a running refresh loop.
type RefreshHandle struct {
	refresher *Refresher
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

// Stop cancels the timer and any in-flight fetch and waits for both to end.
// After Stop returns the refresher never writes to its cell again.
func (h *RefreshHandle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.done

		r := h.refresher
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()

		r.inflight.Wait()
	})
}

// Done is closed when the refresh loop has exited.
func (h *RefreshHandle) Done() <-chan struct{} {
	return h.done
}
