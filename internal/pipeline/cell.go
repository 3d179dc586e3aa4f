package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go-sheet-dashboard/internal/model"
)

// Snapshot cell errors
var (
	ErrStaleSequence = errors.New("snapshot sequence is older than the current snapshot")
	ErrCellClosed    = errors.New("snapshot cell is closed")
)

// SnapshotCell holds the current snapshot. Reads are lock-free; publishes are
// serialized and only accepted when their sequence is newer than the current one.
type SnapshotCell struct {
	current atomic.Pointer[model.Snapshot]
	seq     atomic.Uint64

	mu          sync.Mutex
	closed      bool
	lastAttempt time.Time
	lastError   string
	failureSeq  uint64
	subs        map[int]chan *model.Snapshot
	nextSubID   int

	interval time.Duration
	now      func() time.Time
}

// NewSnapshotCell creates an empty cell in the loading state. interval is the
// expected refresh period, used to age snapshots into staleness.
func NewSnapshotCell(interval time.Duration) *SnapshotCell {
	return &SnapshotCell{
		subs:     make(map[int]chan *model.Snapshot),
		interval: interval,
		now:      time.Now,
	}
}

// Load returns the current snapshot, or nil while loading.
func (c *SnapshotCell) Load() *model.Snapshot {
	return c.current.Load()
}

// NextSequence reserves the sequence number for a refresh that is starting.
func (c *SnapshotCell) NextSequence() uint64 {
	return c.seq.Add(1)
}

// Publish installs snap as the current snapshot and notifies subscribers.
func (c *SnapshotCell) Publish(snap *model.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCellClosed
	}
	if cur := c.current.Load(); cur != nil && snap.Sequence <= cur.Sequence {
		return ErrStaleSequence
	}

	c.current.Store(snap)
	if snap.CapturedAt.After(c.lastAttempt) {
		c.lastAttempt = snap.CapturedAt
	}
	if snap.Sequence > c.failureSeq {
		c.lastError = ""
	}

	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}

	return nil
}

// RecordFailure marks the current snapshot stale after refresh seq failed.
// The snapshot itself is left in place.
func (c *SnapshotCell) RecordFailure(seq uint64, at time.Time, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq < c.failureSeq {
		return
	}
	if cur := c.current.Load(); cur != nil && seq < cur.Sequence {
		return
	}

	c.failureSeq = seq
	c.lastAttempt = at
	if err != nil {
		c.lastError = err.Error()
	}
}

// Status reports the view state and staleness of the current snapshot.
func (c *SnapshotCell) Status() model.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := model.Status{
		State:             model.StateLoading,
		LastError:         c.lastError,
		RefreshIntervalMs: c.interval.Milliseconds(),
	}
	if !c.lastAttempt.IsZero() {
		at := c.lastAttempt
		st.LastAttempt = &at
	}

	cur := c.current.Load()
	if cur == nil {
		return st
	}

	updated := cur.CapturedAt
	st.State = model.StateReady
	st.Sequence = cur.Sequence
	st.Records = len(cur.Records)
	st.LastUpdated = &updated
	st.Stale = c.lastError != "" || (c.interval > 0 && c.now().Sub(updated) > 2*c.interval)

	return st
}

// Subscribe returns a channel that receives every newly published snapshot.
// Slow readers only see the latest one. The cancel func releases the channel.
func (c *SnapshotCell) Subscribe() (<-chan *model.Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan *model.Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
}

// Close rejects further publishes and closes every subscription.
func (c *SnapshotCell) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}
