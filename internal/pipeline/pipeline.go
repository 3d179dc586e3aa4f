package pipeline

import (
	"context"
	"errors"
	"time"

	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/model"
)

// SnapshotSource produces a fresh snapshot of the data source.
type SnapshotSource interface {
	Ingest(ctx context.Context) (*model.Snapshot, error)
}

// Ingester runs fetch, parse and normalize for one refresh.
type Ingester struct {
	fetcher    Fetcher
	normalizer *Normalizer
	log        *logger.Logger
	now        func() time.Time
}

// NewIngester wires a fetcher to a normalizer.
func NewIngester(fetcher Fetcher, normalizer *Normalizer, log *logger.Logger) *Ingester {
	return &Ingester{
		fetcher:    fetcher,
		normalizer: normalizer,
		log:        log,
		now:        time.Now,
	}
}

// Ingest fetches the source and builds an unpublished snapshot. Failures are
// returned as *FetchError or *ParseError; invalid rows are only counted.
func (i *Ingester) Ingest(ctx context.Context) (*model.Snapshot, error) {
	start := i.now()

	data, err := i.fetcher.Fetch(ctx)
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Source: i.fetcher.Source(), Err: err}
		}
		return nil, err
	}

	table, err := ParseCSV(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := BindColumns(table, i.normalizer.Columns()); err != nil {
		return nil, err
	}

	snap := BuildSnapshot(table, i.normalizer, i.now())

	i.log.Debug("source ingested",
		"source", i.fetcher.Source(),
		"bytes", len(data),
		"rows", snap.Stats.RowsRead,
		"kept", snap.Stats.Kept,
		"dropped", snap.Stats.Dropped,
		"elapsed", i.now().Sub(start),
	)

	return snap, nil
}

// BuildSnapshot normalizes every parsed row, keeping valid records in source
// order and counting the rest per drop reason.
func BuildSnapshot(table *ParsedTable, n *Normalizer, capturedAt time.Time) *model.Snapshot {
	columns := make([]string, 0, len(table.Headers))
	for _, h := range table.Headers {
		if h != "" {
			columns = append(columns, h)
		}
	}

	snap := &model.Snapshot{
		Columns:    columns,
		Records:    make([]model.CanonicalRecord, 0, len(table.Rows)),
		CapturedAt: capturedAt,
		Stats: model.IngestStats{
			RowsRead: len(table.Rows),
			Dropped:  make(map[string]int),
		},
	}

	for idx, raw := range table.Rows {
		rec, err := n.Normalize(raw)
		if err != nil {
			snap.Stats.Dropped[DropReason(err)]++
			continue
		}
		rec.Row = idx + 1
		snap.Records = append(snap.Records, rec)
	}
	snap.Stats.Kept = len(snap.Records)

	return snap
}
