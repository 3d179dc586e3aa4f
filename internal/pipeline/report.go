package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/pkg/utils"
)

// BuildDailyReport compares the day of now with the day before.
func BuildDailyReport(records []model.CanonicalRecord, now time.Time, limit int) model.DailyReport {
	day := startOfDay(now)
	return BuildComparisonReport(records, day, day.AddDate(0, 0, -1), limit)
}

// BuildComparisonReport compares the records of date against those of compare
// overall and per site, and ranks the top sites and teams of date's month.
func BuildComparisonReport(records []model.CanonicalRecord, date, compare time.Time, limit int) model.DailyReport {
	day := startOfDay(date)
	dayKey := day.Format(model.DayLayout)
	compareKey := startOfDay(compare).Format(model.DayLayout)

	report := model.DailyReport{
		Date:        dayKey,
		CompareDate: compareKey,
		GrandTotal:  len(records),
	}

	current := make([]model.CanonicalRecord, 0)
	previous := make([]model.CanonicalRecord, 0)
	month := make([]model.CanonicalRecord, 0)
	for _, rec := range records {
		switch rec.DayKey() {
		case dayKey:
			current = append(current, rec)
		case compareKey:
			previous = append(previous, rec)
		}
		if rec.Year == day.Year() && rec.Month == int(day.Month()) {
			month = append(month, rec)
		}
	}

	kpis := ComputeKPIs(current)
	report.Total = kpis.Total
	report.Closed = kpis.Closed
	report.Teams = kpis.Teams
	report.CompareTotal = len(previous)
	report.Difference = report.Total - report.CompareTotal
	report.MonthTotal = len(month)

	if report.CompareTotal > 0 {
		v := utils.RoundTo(float64(report.Difference)/float64(report.CompareTotal)*100, 1)
		report.Variation = &v
	}

	report.BySite = compareSites(current, previous)
	report.TopSites = topN(countBy(month, siteKey), limit)
	report.TopTeams = topN(countBy(month, teamKey), limit)

	return report
}

// compareSites lists every site present on either day, busiest first on the
// current day and then on the compared day.
func compareSites(current, previous []model.CanonicalRecord) []model.SiteComparison {
	index := make(map[string]int)
	rows := make([]model.SiteComparison, 0)
	add := func(records []model.CanonicalRecord, count func(*model.SiteComparison)) {
		for _, rec := range records {
			i, ok := index[rec.Site]
			if !ok {
				i = len(rows)
				index[rec.Site] = i
				rows = append(rows, model.SiteComparison{Site: rec.Site})
			}
			count(&rows[i])
		}
	}
	add(current, func(c *model.SiteComparison) { c.Total++ })
	add(previous, func(c *model.SiteComparison) { c.CompareTotal++ })

	for i := range rows {
		rows[i].Difference = rows[i].Total - rows[i].CompareTotal
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Total != rows[b].Total {
			return rows[a].Total > rows[b].Total
		}
		return rows[a].CompareTotal > rows[b].CompareTotal
	})
	return rows
}

// FormatDailyReport writes the report as plain text.
func FormatDailyReport(w io.Writer, r model.DailyReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "MAINTENANCE DAILY REPORT %s\n\n", r.Date)
	fmt.Fprintf(&b, "Services %s: %d\n", r.Date, r.Total)
	fmt.Fprintf(&b, "Services %s: %d\n", r.CompareDate, r.CompareTotal)
	fmt.Fprintf(&b, "Difference:          %+d\n", r.Difference)
	if r.Variation != nil {
		fmt.Fprintf(&b, "Variation:           %+.1f%% vs %s\n", *r.Variation, r.CompareDate)
	} else {
		fmt.Fprintf(&b, "Variation:           no data for %s\n", r.CompareDate)
	}
	fmt.Fprintf(&b, "Closed:              %d\n", r.Closed)
	fmt.Fprintf(&b, "Active teams:        %d\n", r.Teams)
	fmt.Fprintf(&b, "Month to date:       %d\n", r.MonthTotal)
	fmt.Fprintf(&b, "Grand total:         %d\n", r.GrandTotal)

	writeSiteComparison(&b, r)
	writeRanking(&b, "Top sites (month)", "Site", r.TopSites)
	writeRanking(&b, "Top teams (month)", "Team", r.TopTeams)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSiteComparison(b *strings.Builder, r model.DailyReport) {
	b.WriteString("\nBy site\n")
	if len(r.BySite) == 0 {
		b.WriteString("  (none)\n")
		return
	}

	rows := make([][]string, 0, len(r.BySite))
	for _, s := range r.BySite {
		rows = append(rows, []string{s.Site, strconv.Itoa(s.Total), strconv.Itoa(s.CompareTotal), fmt.Sprintf("%+d", s.Difference)})
	}
	headers := []string{"Site", r.Date, r.CompareDate, "Diff"}
	for _, line := range utils.FormatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true}) {
		b.WriteString("  " + line + "\n")
	}
}

func writeRanking(b *strings.Builder, title, column string, values []model.NamedValue) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(values) == 0 {
		b.WriteString("  (none)\n")
		return
	}

	rows := make([][]string, 0, len(values))
	for i, v := range values {
		rows = append(rows, []string{strconv.Itoa(i + 1), v.Name, strconv.Itoa(v.Value)})
	}
	for _, line := range utils.FormatTable([]string{"#", column, "Services"}, rows, map[int]bool{0: true, 2: true}) {
		b.WriteString("  " + line + "\n")
	}
}
