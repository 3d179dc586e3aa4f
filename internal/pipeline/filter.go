package pipeline

import (
	"slices"
	"sort"

	"go-sheet-dashboard/internal/model"
)

// Apply returns the records of snap matching every constrained field of sel,
// in snapshot order. The result is never nil.
func Apply(snap *model.Snapshot, sel model.FilterSelection) []model.CanonicalRecord {
	if snap == nil {
		return []model.CanonicalRecord{}
	}
	if sel.IsAll() {
		return slices.Clip(snap.Records)
	}

	out := make([]model.CanonicalRecord, 0, len(snap.Records))
	for _, rec := range snap.Records {
		if matches(rec, sel) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec model.CanonicalRecord, sel model.FilterSelection) bool {
	if sel.Year != 0 && rec.Year != sel.Year {
		return false
	}
	if sel.Month != 0 && rec.Month != sel.Month {
		return false
	}
	if sel.Site != "" && rec.Site != sel.Site {
		return false
	}
	if sel.Team != "" && rec.Team != sel.Team {
		return false
	}
	if sel.ServiceType != "" && rec.ServiceType != sel.ServiceType {
		return false
	}
	if sel.From != "" || sel.To != "" {
		key := rec.DayKey()
		if key == "" || (sel.From != "" && key < sel.From) || (sel.To != "" && key > sel.To) {
			return false
		}
	}
	return true
}

// Options lists the distinct non-empty values of each filter field across the
// whole snapshot, ascending. It never looks at a filtered subset, so options
// stay put while other filters change.
func Options(snap *model.Snapshot) model.FilterOptions {
	opts := model.FilterOptions{
		Years:        []int{},
		Months:       []int{},
		Sites:        []string{},
		Teams:        []string{},
		ServiceTypes: []string{},
	}
	if snap == nil {
		return opts
	}

	years := make(map[int]struct{})
	months := make(map[int]struct{})
	sites := make(map[string]struct{})
	teams := make(map[string]struct{})
	types := make(map[string]struct{})

	for _, rec := range snap.Records {
		if rec.Year != 0 {
			years[rec.Year] = struct{}{}
		}
		if rec.Month != 0 {
			months[rec.Month] = struct{}{}
		}
		if rec.Site != "" {
			sites[rec.Site] = struct{}{}
		}
		if rec.Team != "" {
			teams[rec.Team] = struct{}{}
		}
		if rec.ServiceType != "" {
			types[rec.ServiceType] = struct{}{}
		}
		if key := rec.DayKey(); key != "" {
			if opts.Period.From == "" || key < opts.Period.From {
				opts.Period.From = key
			}
			if key > opts.Period.To {
				opts.Period.To = key
			}
		}
	}

	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	for s := range sites {
		opts.Sites = append(opts.Sites, s)
	}
	for t := range teams {
		opts.Teams = append(opts.Teams, t)
	}
	for t := range types {
		opts.ServiceTypes = append(opts.ServiceTypes, t)
	}

	sort.Ints(opts.Years)
	sort.Ints(opts.Months)
	sort.Strings(opts.Sites)
	sort.Strings(opts.Teams)
	sort.Strings(opts.ServiceTypes)

	return opts
}
