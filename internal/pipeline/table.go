package pipeline

import (
	"strings"

	"go-sheet-dashboard/internal/model"
)

// Search keeps records where term appears, case-insensitively, in any
// original column or canonical field. An empty term keeps everything.
func Search(records []model.CanonicalRecord, term string) []model.CanonicalRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}

	out := make([]model.CanonicalRecord, 0)
	for _, rec := range records {
		if recordContains(rec, term) {
			out = append(out, rec)
		}
	}
	return out
}

func recordContains(rec model.CanonicalRecord, term string) bool {
	for _, v := range []string{rec.Site, rec.Team, rec.DayKey(), rec.Closure, rec.ServiceType} {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	for _, v := range rec.Fields {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// Paginate returns the 1-based page of size rows, clamping page into range.
func Paginate(records []model.CanonicalRecord, page, size int) model.TablePage {
	if size < 1 {
		size = 20
	}

	total := len(records)
	pages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = max(pages, 1)
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return model.TablePage{
		Rows:  records[start:end:end],
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}
}
