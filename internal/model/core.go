package model

import (
	"encoding/json"
	"time"
)

// DayLayout is the ISO calendar-day format used for every date key.
const DayLayout = "2006-01-02"

// RawRecord maps a column name from the source header row to the cell value
type RawRecord map[string]string

// CanonicalRecord is a normalized row. It keeps every original column and adds
// the canonical site/team values plus the calendar attributes of the service date.
type CanonicalRecord struct {
	Row         int               `json:"row"`
	Fields      map[string]string `json:"fields"`
	Site        string            `json:"site"`
	Team        string            `json:"team"`
	ServiceDate *time.Time        `json:"-"`
	Year        int               `json:"year,omitempty"`
	Month       int               `json:"month,omitempty"`
	Closure     string            `json:"closure,omitempty"`
	ServiceType string            `json:"serviceType,omitempty"`
}

// HasDate reports whether the service date parsed.
func (r CanonicalRecord) HasDate() bool {
	return r.ServiceDate != nil
}

// DayKey returns the service date as YYYY-MM-DD, or "" when absent.
func (r CanonicalRecord) DayKey() string {
	if r.ServiceDate == nil {
		return ""
	}
	return r.ServiceDate.Format(DayLayout)
}

// Closed reports whether the closure/handoff marker is filled in.
func (r CanonicalRecord) Closed() bool {
	return r.Closure != ""
}

// MarshalJSON renders the service date as an ISO day string.
func (r CanonicalRecord) MarshalJSON() ([]byte, error) {
	type alias CanonicalRecord
	return json.Marshal(struct {
		alias
		ServiceDate string `json:"serviceDate,omitempty"`
	}{
		alias:       alias(r),
		ServiceDate: r.DayKey(),
	})
}

// Drop reasons recorded in IngestStats.Dropped
const (
	DropInvalidDate    = "invalid_date"
	DropEmptySite      = "empty_site"
	DropYearOutOfRange = "year_out_of_range"
)

// IngestStats summarizes one parse pass over the source.
type IngestStats struct {
	RowsRead int            `json:"rowsRead"`
	Kept     int            `json:"kept"`
	Dropped  map[string]int `json:"dropped"`
}

// DroppedTotal is the number of rows excluded for any reason.
func (s IngestStats) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

// Snapshot is one immutable capture of the whole data source.
// Records keep the source row order. A Snapshot is never mutated after it is published.
type Snapshot struct {
	Columns    []string          `json:"columns"`
	Records    []CanonicalRecord `json:"records"`
	CapturedAt time.Time         `json:"capturedAt"`
	Sequence   uint64            `json:"sequence"`
	Stats      IngestStats       `json:"stats"`
}

// Len returns the number of records, treating a nil snapshot as empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
