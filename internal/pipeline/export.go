package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-sheet-dashboard/internal/model"
)

// ErrUnknownExportFormat is returned for formats other than csv and json.
var ErrUnknownExportFormat = errors.New("export format must be 'csv' or 'json'")

// derivedColumns are appended after the source columns in CSV exports
var derivedColumns = []string{"site", "team", "service_date", "year", "month"}

// Export writes records in the named format ("csv" or "json").
func Export(w io.Writer, format string, columns []string, records []model.CanonicalRecord) error {
	switch strings.ToLower(format) {
	case "csv":
		return ExportCSV(w, columns, records)
	case "json":
		return ExportJSON(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
}

// ExportCSV writes the source columns, in source order, followed by the
// canonical fields.
func ExportCSV(w io.Writer, columns []string, records []model.CanonicalRecord) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(columns)+len(derivedColumns))
	header = append(header, columns...)
	header = append(header, derivedColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec.Fields[col]
		}
		n := len(columns)
		row[n] = rec.Site
		row[n+1] = rec.Team
		row[n+2] = rec.DayKey()
		row[n+3] = strconv.Itoa(rec.Year)
		row[n+4] = strconv.Itoa(rec.Month)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", rec.Row, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportJSON writes records as an indented JSON array.
func ExportJSON(w io.Writer, records []model.CanonicalRecord) error {
	if records == nil {
		records = []model.CanonicalRecord{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
