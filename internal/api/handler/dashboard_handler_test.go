package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/internal/pipeline"
)

var testNow = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func record(site, team string, y int, m time.Month, d int, closure string) model.CanonicalRecord {
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return model.CanonicalRecord{
		Fields:      map[string]string{"POLO": site, "EQUIPE": team},
		Site:        site,
		Team:        team,
		ServiceDate: &date,
		Year:        y,
		Month:       int(m),
		Closure:     closure,
	}
}

func withType(r model.CanonicalRecord, serviceType string) model.CanonicalRecord {
	r.ServiceType = serviceType
	return r
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Columns: []string{"POLO", "EQUIPE"},
		Records: []model.CanonicalRecord{
			withType(record("MARABÁ", "EQ01", 2024, time.March, 6, "ANA"), "PODA"),
			withType(record("MARABÁ", "EQ02", 2024, time.March, 5, ""), "PODA"),
			withType(record("CANAÃ", "EQ01", 2024, time.March, 5, ""), "TROCA DE LAMPADA"),
			record("CANAÃ", "EQ03", 2023, time.November, 2, "BIA"),
		},
		CapturedAt: testNow,
	}
}

type stubRefresher struct {
	cell *pipeline.SnapshotCell
	snap *model.Snapshot
	err  error
}

func (s *stubRefresher) Refresh(ctx context.Context, trigger string) (*model.Snapshot, error) {
	if s.err != nil {
		s.cell.RecordFailure(s.cell.NextSequence(), testNow, s.err)
		return nil, s.err
	}
	s.snap.Sequence = s.cell.NextSequence()
	return s.snap, s.cell.Publish(s.snap)
}

type stubHistory struct {
	runs []model.RefreshRun
	err  error
}

func (s stubHistory) ListRuns(ctx context.Context, limit int) ([]model.RefreshRun, error) {
	if len(s.runs) > limit {
		return s.runs[:limit], s.err
	}
	return s.runs, s.err
}

func newTestHandler(t *testing.T, loaded bool) (*DashboardHandler, *pipeline.SnapshotCell) {
	t.Helper()
	cell := pipeline.NewSnapshotCell(5 * time.Minute)
	if loaded {
		snap := testSnapshot()
		snap.Sequence = cell.NextSequence()
		require.NoError(t, cell.Publish(snap))
	}
	h := NewDashboardHandler(cell, nil, nil, config.Default().Views, time.UTC, logger.NewNop()).
		WithClock(func() time.Time { return testNow })
	return h, cell
}

func serve(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestDataEndpointsWhileLoading(t *testing.T) {
	h, _ := newTestHandler(t, false)

	for name, fn := range map[string]http.HandlerFunc{
		"dashboard": h.GetDashboard,
		"kpis":      h.GetKPIs,
		"sites":     h.GetSitesSeries,
		"recent":    h.GetRecentSeries,
		"types":     h.GetServiceTypesSeries,
		"heatmap":   h.GetHeatmap,
		"today":     h.GetToday,
		"options":   h.GetOptions,
		"report":    h.GetDailyReport,
		"records":   h.GetRecords,
		"export":    h.ExportRecords,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(fn, http.MethodGet, "/")
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			body := decode[map[string]interface{}](t, rec)
			assert.Equal(t, "loading", body["state"])
		})
	}
}

func TestHealthAndStatus(t *testing.T) {
	h, _ := newTestHandler(t, false)

	rec := serve(h.Health, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "loading", decode[map[string]interface{}](t, rec)["state"])

	h, _ = newTestHandler(t, true)
	rec = serve(h.GetStatus, http.MethodGet, "/api/v1/status")
	st := decode[model.Status](t, rec)
	assert.Equal(t, model.StateReady, st.State)
	assert.Equal(t, 4, st.Records)
	assert.Equal(t, int64(300000), st.RefreshIntervalMs)
}

func TestGetKPIsWithFilters(t *testing.T) {
	h, _ := newTestHandler(t, true)

	kpis := decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/api/v1/kpis"))
	assert.Equal(t, 4, kpis.Total)
	assert.Equal(t, 2, kpis.Closed)

	kpis = decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/api/v1/kpis?year=2024&month=3&site=+marab%C3%A1+"))
	assert.Equal(t, 2, kpis.Total, "site is trimmed and upper-cased")

	kpis = decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/api/v1/kpis?ano=2024&polo=MARAB%C3%81"))
	assert.Equal(t, 2, kpis.Total)

	kpis = decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/api/v1/kpis?team=eq%2001&year=all"))
	assert.Equal(t, 2, kpis.Total)
	assert.Equal(t, 2, kpis.Sites)
}

func TestInvalidFilterIsBadRequest(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := serve(h.GetDashboard, http.MethodGet, "/api/v1/dashboard?month=13")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "month")

	rec = serve(h.GetKPIs, http.MethodGet, "/api/v1/kpis?year=soon")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := serve(h.GetDashboard, http.MethodGet, "/api/v1/dashboard?site=CANA%C3%83")
	require.Equal(t, http.StatusOK, rec.Code)

	dash := decode[model.Dashboard](t, rec)
	assert.Equal(t, "CANAÃ", dash.Selection.Site)
	assert.Equal(t, 2, dash.KPIs.Total)
	assert.Equal(t, []string{"CANAÃ", "MARABÁ"}, dash.Options.Sites)
	assert.Equal(t, 1, dash.Today.Total, "today ignores the selection")
	assert.Len(t, dash.Recent, 7)
	assert.Equal(t, model.StateReady, dash.Status.State)
}

func TestSeriesEndpoints(t *testing.T) {
	h, _ := newTestHandler(t, true)

	sites := decode[[]model.NamedValue](t, serve(h.GetSitesSeries, http.MethodGet, "/"))
	assert.Equal(t, []model.NamedValue{{Name: "MARABÁ", Value: 2}, {Name: "CANAÃ", Value: 2}}, sites)

	teams := decode[[]model.NamedValue](t, serve(h.GetTeamsSeries, http.MethodGet, "/?year=2024"))
	assert.Equal(t, model.NamedValue{Name: "EQ01", Value: 2}, teams[0])

	dates := decode[[]model.DatedValue](t, serve(h.GetDatesSeries, http.MethodGet, "/"))
	assert.Equal(t, "2023-11-02", dates[0].Date)

	recent := decode[[]model.DatedValue](t, serve(h.GetRecentSeries, http.MethodGet, "/"))
	require.Len(t, recent, 7)
	assert.Equal(t, model.DatedValue{Date: "2024-03-06", Value: 1}, recent[6])
	assert.Equal(t, model.DatedValue{Date: "2024-03-05", Value: 2}, recent[5])

	stats := decode[[]model.SiteStat](t, serve(h.GetSiteStats, http.MethodGet, "/"))
	assert.Equal(t, 50.0, stats[0].ClosedPct)
}

func TestGetDailyReport(t *testing.T) {
	h, _ := newTestHandler(t, true)

	report := decode[model.DailyReport](t, serve(h.GetDailyReport, http.MethodGet, "/"))
	assert.Equal(t, "2024-03-06", report.Date)
	assert.Equal(t, "2024-03-05", report.CompareDate)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 2, report.CompareTotal)
	require.NotNil(t, report.Variation)
	assert.Equal(t, -50.0, *report.Variation)

	rec := serve(h.GetDailyReport, http.MethodGet, "/?format=text")
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "MAINTENANCE DAILY REPORT 2024-03-06")
}

func TestGetDailyReportForChosenDays(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := serve(h.GetDailyReport, http.MethodGet, "/?date=2024-03-05&compare=2023-11-02")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[model.DailyReport](t, rec)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.CompareTotal)
	assert.Equal(t, []model.SiteComparison{
		{Site: "CANAÃ", Total: 1, CompareTotal: 1, Difference: 0},
		{Site: "MARABÁ", Total: 1, CompareTotal: 0, Difference: 1},
	}, report.BySite)

	report = decode[model.DailyReport](t, serve(h.GetDailyReport, http.MethodGet, "/?date=2024-03-05"))
	assert.Equal(t, "2024-03-04", report.CompareDate, "compare defaults to the day before date")

	rec = serve(h.GetDailyReport, http.MethodGet, "/?date=05/03/2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "YYYY-MM-DD")
}

func TestPeriodAndServiceTypeFilters(t *testing.T) {
	h, _ := newTestHandler(t, true)

	kpis := decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/?from=2024-03-05&to=2024-03-05"))
	assert.Equal(t, 2, kpis.Total)

	kpis = decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/?de=2024-03-06"))
	assert.Equal(t, 1, kpis.Total)

	kpis = decode[model.KPIs](t, serve(h.GetKPIs, http.MethodGet, "/?tipo=+poda+"))
	assert.Equal(t, 2, kpis.Total)

	for _, q := range []string{"/?from=06/03/2024", "/?from=2024-03-06&to=2024-03-05"} {
		rec := serve(h.GetKPIs, http.MethodGet, q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	types := decode[[]model.NamedValue](t, serve(h.GetServiceTypesSeries, http.MethodGet, "/"))
	assert.Equal(t, []model.NamedValue{{Name: "PODA", Value: 2}, {Name: "TROCA DE LAMPADA", Value: 1}}, types)

	opts := decode[model.FilterOptions](t, serve(h.GetOptions, http.MethodGet, "/"))
	assert.Equal(t, []string{"PODA", "TROCA DE LAMPADA"}, opts.ServiceTypes)
	assert.Equal(t, model.DateSpan{From: "2023-11-02", To: "2024-03-06"}, opts.Period)
}

func TestGetHeatmap(t *testing.T) {
	h, _ := newTestHandler(t, true)

	hm := decode[model.Heatmap](t, serve(h.GetHeatmap, http.MethodGet, "/"))
	assert.Equal(t, []string{"MARABÁ", "CANAÃ"}, hm.Sites)
	assert.Equal(t, []string{"2023-11-02", "2024-03-05", "2024-03-06"}, hm.Days)
	assert.Equal(t, [][]int{{0, 1, 1}, {1, 1, 0}}, hm.Counts)

	hm = decode[model.Heatmap](t, serve(h.GetHeatmap, http.MethodGet, "/?days=1"))
	assert.Equal(t, []string{"MARABÁ"}, hm.Sites)
	assert.Equal(t, [][]int{{1}}, hm.Counts)

	rec := serve(h.GetHeatmap, http.MethodGet, "/?days=-2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecords(t *testing.T) {
	h, _ := newTestHandler(t, true)

	page := decode[model.TablePage](t, serve(h.GetRecords, http.MethodGet, "/?search=eq01&size=1&page=2"))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "CANAÃ", page.Rows[0].Site)
}

func TestExportRecords(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := serve(h.ExportRecords, http.MethodGet, "/?site=MARAB%C3%81")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "records-20240306-100000.csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "POLO,EQUIPE,site,team,service_date,year,month", lines[0])

	rec = serve(h.ExportRecords, http.MethodGet, "/?format=json")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 4)

	rec = serve(h.ExportRecords, http.MethodGet, "/?format=xlsx")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerRefresh(t *testing.T) {
	h, cell := newTestHandler(t, false)

	rec := serve(h.TriggerRefresh, http.MethodPost, "/api/v1/refresh")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "no refresher configured")

	stub := &stubRefresher{cell: cell, snap: testSnapshot()}
	h.refresher = stub

	rec = serve(h.TriggerRefresh, http.MethodPost, "/api/v1/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StateReady, decode[model.Status](t, rec).State)

	stub.err = &pipeline.FetchError{Source: "sheet", StatusCode: 500, Err: pipeline.ErrUnexpectedStatusCode}
	rec = serve(h.TriggerRefresh, http.MethodPost, "/api/v1/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 4, cell.Status().Records, "previous snapshot is kept")
	assert.True(t, cell.Status().Stale)

	stub.err = pipeline.ErrRefresherStopped
	rec = serve(h.TriggerRefresh, http.MethodPost, "/api/v1/refresh")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListRefreshes(t *testing.T) {
	h, _ := newTestHandler(t, true)

	rec := serve(h.ListRefreshes, http.MethodGet, "/api/v1/refreshes")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.RefreshRun](t, rec))

	h.history = stubHistory{runs: []model.RefreshRun{{ID: "a"}, {ID: "b"}}}
	runs := decode[[]model.RefreshRun](t, serve(h.ListRefreshes, http.MethodGet, "/?limit=1"))
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].ID)

	h.history = stubHistory{err: errors.New("disk full")}
	rec = serve(h.ListRefreshes, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
