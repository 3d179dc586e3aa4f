package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/model"
)

// Structural parse errors
var (
	ErrMissingHeader = errors.New("source has no header row")
	ErrMissingColumn = errors.New("required column not found in header")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError reports malformed tabular structure.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParsedTable is the raw result of one CSV parse pass.
type ParsedTable struct {
	Headers []string
	Rows    []model.RawRecord
}

// ParseCSV reads delimited text whose first row names the columns.
// Short rows leave trailing columns absent, extra cells are ignored and rows
// whose cells are all blank are skipped.
func ParseCSV(ctx context.Context, data []byte) (*ParsedTable, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	csvReader := csv.NewReader(bytes.NewReader(data))
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	rawHeaders, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: ErrMissingHeader}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("failed to read CSV header: %w", err)}
	}

	headers := make([]string, len(rawHeaders))
	nonEmpty := 0
	for i, h := range rawHeaders {
		// Clean header names: trim whitespace and remove ALL quotes
		clean := strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
		headers[i] = clean
		if clean != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, &ParseError{Line: 1, Err: ErrMissingHeader}
	}

	table := &ParsedTable{Headers: headers}
	for {
		if len(table.Rows)%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := csvReader.FieldPos(0)
			return nil, &ParseError{Line: line, Err: fmt.Errorf("CSV read error: %w", err)}
		}

		if blankRow(record) {
			continue
		}

		rec := make(model.RawRecord, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(record) {
				continue
			}
			if _, dup := rec[h]; dup {
				continue
			}
			rec[h] = record[i]
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

func blankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// BindColumns renames headers that match a configured column loosely (case,
// accents, whitespace) to the configured name. Site, team and date columns
// must be present.
func BindColumns(table *ParsedTable, cols config.ColumnsConfig) error {
	wanted := []struct {
		name     string
		required bool
	}{
		{cols.Site, true},
		{cols.Team, true},
		{cols.Date, true},
		{cols.Closure, false},
		{cols.ServiceType, false},
	}

	rename := make(map[string]string)
	for _, w := range wanted {
		if w.name == "" {
			continue
		}
		key := foldHeader(w.name)
		found := false
		for _, h := range table.Headers {
			if h == w.name {
				found = true
				break
			}
		}
		if !found {
			for _, h := range table.Headers {
				if h != "" && foldHeader(h) == key {
					rename[h] = w.name
					found = true
					break
				}
			}
		}
		if !found && w.required {
			return &ParseError{Line: 1, Err: fmt.Errorf("%w: %q", ErrMissingColumn, w.name)}
		}
	}

	if len(rename) == 0 {
		return nil
	}

	for i, h := range table.Headers {
		if to, ok := rename[h]; ok {
			table.Headers[i] = to
		}
	}
	for _, row := range table.Rows {
		for from, to := range rename {
			if v, ok := row[from]; ok {
				delete(row, from)
				row[to] = v
			}
		}
	}

	return nil
}
