package model

import "time"

// ViewState is the lifecycle of the dashboard: loading until the first
// snapshot is published, ready from then on.
type ViewState string

const (
	StateLoading ViewState = "loading"
	StateReady   ViewState = "ready"
)

// Status describes the freshness of the current snapshot
type Status struct {
	State             ViewState  `json:"state"`
	Stale             bool       `json:"stale"`
	Sequence          uint64     `json:"sequence"`
	Records           int        `json:"records"`
	LastUpdated       *time.Time `json:"lastUpdated,omitempty"`
	LastAttempt       *time.Time `json:"lastAttempt,omitempty"`
	LastError         string     `json:"lastError,omitempty"`
	RefreshIntervalMs int64      `json:"refreshIntervalMs"`
}

// Refresh run outcomes
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
	RunDiscarded = "discarded"
)

// RefreshRun is the history entry for one refresh attempt
type RefreshRun struct {
	ID         string     `json:"id"`
	Sequence   uint64     `json:"sequence"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	RowsRead   int        `json:"rowsRead"`
	Records    int        `json:"records"`
	Dropped    int        `json:"dropped"`
	Error      string     `json:"error,omitempty"`
}

// Duration is the elapsed time of a finished run
func (r RefreshRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
