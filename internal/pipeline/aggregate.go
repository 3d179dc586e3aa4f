package pipeline

import (
	"sort"
	"time"

	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/pkg/utils"
)

// ComputeKPIs returns the scalar tiles for a record subset.
func ComputeKPIs(records []model.CanonicalRecord) model.KPIs {
	sites := make(map[string]struct{})
	teams := make(map[string]struct{})
	days := make(map[string]struct{})

	kpis := model.KPIs{Total: len(records)}
	for _, rec := range records {
		sites[rec.Site] = struct{}{}
		if rec.Team != "" {
			teams[rec.Team] = struct{}{}
		}
		if key := rec.DayKey(); key != "" {
			days[key] = struct{}{}
		}
		if rec.Closed() {
			kpis.Closed++
		}
	}

	kpis.Sites = len(sites)
	kpis.Teams = len(teams)
	kpis.ServiceDays = len(days)
	if len(days) > 0 {
		kpis.AveragePerDay = utils.RoundTo(float64(len(records))/float64(len(days)), 1)
	}

	return kpis
}

// countBy groups records by key in first-seen order and sorts the groups by
// count, descending. The sort is stable so ties keep discovery order.
// Records whose key is empty are not counted.
func countBy(records []model.CanonicalRecord, key func(model.CanonicalRecord) string) []model.NamedValue {
	index := make(map[string]int)
	groups := []model.NamedValue{}

	for _, rec := range records {
		k := key(rec)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.NamedValue{Name: k})
		}
		groups[i].Value++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Value > groups[b].Value
	})
	return groups
}

func siteKey(r model.CanonicalRecord) string        { return r.Site }
func teamKey(r model.CanonicalRecord) string        { return r.Team }
func serviceTypeKey(r model.CanonicalRecord) string { return r.ServiceType }

func topN(groups []model.NamedValue, limit int) []model.NamedValue {
	if limit > 0 && len(groups) > limit {
		return groups[:limit]
	}
	return groups
}

// BySite counts records per site, every group, descending.
func BySite(records []model.CanonicalRecord) []model.NamedValue {
	return countBy(records, siteKey)
}

// ByTeam counts records per team and keeps the top limit groups.
func ByTeam(records []model.CanonicalRecord, limit int) []model.NamedValue {
	return topN(countBy(records, teamKey), limit)
}

// ByServiceType counts records per service type and keeps the top limit
// groups. Records without a service type are not counted.
func ByServiceType(records []model.CanonicalRecord, limit int) []model.NamedValue {
	return topN(countBy(records, serviceTypeKey), limit)
}

// Heatmap counts records per site and calendar day. Only the latest days
// distinct days are kept when days > 0. Sites are ordered by their total in
// the kept window, descending; days ascend.
func Heatmap(records []model.CanonicalRecord, days int) model.Heatmap {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if key := rec.DayKey(); key != "" {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if days > 0 && len(keys) > days {
		keys = keys[len(keys)-days:]
	}

	col := make(map[string]int, len(keys))
	for i, k := range keys {
		col[k] = i
	}
	window := make([]model.CanonicalRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := col[rec.DayKey()]; ok {
			window = append(window, rec)
		}
	}

	sites := countBy(window, siteKey)
	hm := model.Heatmap{
		Sites:  make([]string, len(sites)),
		Days:   keys,
		Counts: make([][]int, len(sites)),
	}
	row := make(map[string]int, len(sites))
	for i, s := range sites {
		hm.Sites[i] = s.Name
		hm.Counts[i] = make([]int, len(keys))
		row[s.Name] = i
	}
	for _, rec := range window {
		if i, ok := row[rec.Site]; ok {
			hm.Counts[i][col[rec.DayKey()]]++
		}
	}
	return hm
}

// ByDate buckets records by calendar day, oldest first.
func ByDate(records []model.CanonicalRecord) []model.DatedValue {
	counts := make(map[string]int)
	for _, rec := range records {
		if key := rec.DayKey(); key != "" {
			counts[key]++
		}
	}

	series := make([]model.DatedValue, 0, len(counts))
	for day, n := range counts {
		series = append(series, model.DatedValue{Date: day, Value: n})
	}
	sort.Slice(series, func(a, b int) bool {
		return series[a].Date < series[b].Date
	})
	return series
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Recent returns one point per calendar day for the last days days,
// today included, oldest first. Days without records count zero.
// Pass the unfiltered snapshot records.
func Recent(records []model.CanonicalRecord, now time.Time, days int) []model.DatedValue {
	if days < 1 {
		return []model.DatedValue{}
	}

	today := startOfDay(now)
	series := make([]model.DatedValue, days)
	pos := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := today.AddDate(0, 0, i-days+1).Format(model.DayLayout)
		series[i] = model.DatedValue{Date: key}
		pos[key] = i
	}

	for _, rec := range records {
		if i, ok := pos[rec.DayKey()]; ok {
			series[i].Value++
		}
	}
	return series
}

// Today counts the records dated today per team, descending, plus the total.
// Pass the unfiltered snapshot records.
func Today(records []model.CanonicalRecord, now time.Time) model.TodayBreakdown {
	key := startOfDay(now).Format(model.DayLayout)

	todays := make([]model.CanonicalRecord, 0)
	for _, rec := range records {
		if rec.DayKey() == key {
			todays = append(todays, rec)
		}
	}

	return model.TodayBreakdown{
		Date:   key,
		Total:  len(todays),
		ByTeam: countBy(todays, teamKey),
	}
}

// SiteStats summarizes each site: records, distinct teams, closures and the
// closure percentage. Rows are ordered like BySite.
func SiteStats(records []model.CanonicalRecord) []model.SiteStat {
	type acc struct {
		teams  map[string]struct{}
		closed int
	}
	per := make(map[string]*acc)
	for _, rec := range records {
		a, ok := per[rec.Site]
		if !ok {
			a = &acc{teams: make(map[string]struct{})}
			per[rec.Site] = a
		}
		if rec.Team != "" {
			a.teams[rec.Team] = struct{}{}
		}
		if rec.Closed() {
			a.closed++
		}
	}

	bySite := BySite(records)
	stats := make([]model.SiteStat, 0, len(bySite))
	for _, s := range bySite {
		a := per[s.Name]
		stats = append(stats, model.SiteStat{
			Site:      s.Name,
			Total:     s.Value,
			Teams:     len(a.teams),
			Closed:    a.closed,
			ClosedPct: utils.Percent(a.closed, s.Value),
		})
	}
	return stats
}
