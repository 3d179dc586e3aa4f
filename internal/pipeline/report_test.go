package pipeline

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sheet-dashboard/internal/model"
)

func reportRecords() []model.CanonicalRecord {
	return []model.CanonicalRecord{
		rec("MARABÁ", "EQ01", 2024, time.March, 6),
		rec("MARABÁ", "EQ02", 2024, time.March, 6),
		rec("CANAÃ", "EQ01", 2024, time.March, 6),
		rec("MARABÁ", "EQ01", 2024, time.March, 5),
		rec("MARABÁ", "EQ01", 2024, time.March, 5),
		rec("TUCURUÍ", "EQ03", 2024, time.March, 1),
		rec("CANAÃ", "EQ09", 2024, time.February, 28),
	}
}

func TestBuildDailyReport(t *testing.T) {
	now := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	r := BuildDailyReport(reportRecords(), now, 2)

	assert.Equal(t, "2024-03-06", r.Date)
	assert.Equal(t, "2024-03-05", r.CompareDate)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.CompareTotal)
	assert.Equal(t, 1, r.Difference)
	require.NotNil(t, r.Variation)
	assert.InDelta(t, 50.0, *r.Variation, 1e-9)
	assert.Equal(t, 2, r.Teams)
	assert.Equal(t, 0, r.Closed)
	assert.Equal(t, 6, r.MonthTotal)
	assert.Equal(t, 7, r.GrandTotal)
	assert.Equal(t, []model.SiteComparison{
		{Site: "MARABÁ", Total: 2, CompareTotal: 2, Difference: 0},
		{Site: "CANAÃ", Total: 1, CompareTotal: 0, Difference: 1},
	}, r.BySite)
	assert.Equal(t, []model.NamedValue{{Name: "MARABÁ", Value: 4}, {Name: "CANAÃ", Value: 1}}, r.TopSites)
	assert.Equal(t, []model.NamedValue{{Name: "EQ01", Value: 4}, {Name: "EQ02", Value: 1}}, r.TopTeams)
}

func TestBuildDailyReportWithoutYesterday(t *testing.T) {
	now := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	r := BuildDailyReport(reportRecords(), now, 3)

	assert.Equal(t, 0, r.Total)
	assert.Equal(t, 1, r.CompareTotal)
	require.NotNil(t, r.Variation)
	assert.InDelta(t, -100.0, *r.Variation, 1e-9)

	r = BuildDailyReport(reportRecords(), now.AddDate(0, 1, 0), 3)
	assert.Nil(t, r.Variation)
	assert.Equal(t, 0, r.MonthTotal)
	assert.Empty(t, r.BySite)
}

func TestBuildComparisonReport(t *testing.T) {
	date := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	compare := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	r := BuildComparisonReport(reportRecords(), date, compare, 3)

	assert.Equal(t, "2024-03-01", r.CompareDate)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.CompareTotal)
	require.NotNil(t, r.Variation)
	assert.InDelta(t, 200.0, *r.Variation, 1e-9)
	assert.Equal(t, []model.SiteComparison{
		{Site: "MARABÁ", Total: 2, CompareTotal: 0, Difference: 2},
		{Site: "CANAÃ", Total: 1, CompareTotal: 0, Difference: 1},
		{Site: "TUCURUÍ", Total: 0, CompareTotal: 1, Difference: -1},
	}, r.BySite)
}

func TestBuildComparisonReportRanksMonthOfDate(t *testing.T) {
	date := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	compare := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	r := BuildComparisonReport(reportRecords(), date, compare, 3)

	assert.Equal(t, 1, r.Total)
	assert.Equal(t, 3, r.CompareTotal)
	assert.Equal(t, -2, r.Difference)
	require.NotNil(t, r.Variation)
	assert.InDelta(t, -66.7, *r.Variation, 1e-9)
	assert.Equal(t, 1, r.MonthTotal)
	assert.Equal(t, []model.NamedValue{{Name: "CANAÃ", Value: 1}}, r.TopSites)
}

func TestFormatDailyReport(t *testing.T) {
	now := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, FormatDailyReport(&buf, BuildDailyReport(reportRecords(), now, 3)))

	out := buf.String()
	assert.Contains(t, out, "MAINTENANCE DAILY REPORT 2024-03-06")
	assert.Contains(t, out, "Services 2024-03-06: 3")
	assert.Contains(t, out, "Services 2024-03-05: 2")
	assert.Contains(t, out, "Difference:          +1")
	assert.Contains(t, out, "Variation:           +50.0% vs 2024-03-05")
	assert.Contains(t, out, "Active teams:        2")
	assert.Contains(t, out, "  Site   2024-03-06 2024-03-05 Diff")
	assert.Contains(t, out, "  CANAÃ"+strings.Repeat(" ", 11)+"1"+strings.Repeat(" ", 10)+"0   +1")
	assert.Contains(t, out, "  # Site    Services")
	assert.Contains(t, out, "  1 MARABÁ         4")
	assert.Contains(t, out, "Top teams (month)")

	buf.Reset()
	require.NoError(t, FormatDailyReport(&buf, model.DailyReport{Date: "2024-03-06", CompareDate: "2024-03-05"}))
	assert.Contains(t, buf.String(), "no data for 2024-03-05")
	assert.Contains(t, buf.String(), "(none)")
}
