package pipeline

import (
	"errors"
	"fmt"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/model"
)

// Invalid-record reasons. A row failing any of these is dropped from the
// snapshot and only counted.
var (
	ErrInvalidDate    = errors.New("service date missing or not a valid D/M/Y date")
	ErrEmptySite      = errors.New("site is empty")
	ErrYearOutOfRange = errors.New("service year outside accepted window")
)

// validateRecord applies the validity rules to a normalized record.
func validateRecord(rec model.CanonicalRecord, window config.YearWindow) error {
	if !rec.HasDate() {
		return ErrInvalidDate
	}

	if rec.Site == "" {
		return ErrEmptySite
	}

	if !window.Contains(rec.Year) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, rec.Year, window.Min, window.Max)
	}

	return nil
}

// DropReason maps a validation error to the key counted in IngestStats.Dropped.
func DropReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return model.DropInvalidDate
	case errors.Is(err, ErrEmptySite):
		return model.DropEmptySite
	case errors.Is(err, ErrYearOutOfRange):
		return model.DropYearOutOfRange
	default:
		return "other"
	}
}
