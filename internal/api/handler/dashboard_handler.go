package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/internal/pipeline"
	"go-sheet-dashboard/pkg/utils"
)

// Refresher forces a refresh of the snapshot.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) (*model.Snapshot, error)
}

// RunLister reads the refresh history.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]model.RefreshRun, error)
}

// DashboardHandler serves the derived views of the current snapshot.
type DashboardHandler struct {
	cell      *pipeline.SnapshotCell
	refresher Refresher
	history   RunLister
	views     config.ViewsConfig
	loc       *time.Location
	log       *logger.Logger
	now       func() time.Time
}

// NewDashboardHandler creates the handler. refresher and history may be nil.
func NewDashboardHandler(cell *pipeline.SnapshotCell, refresher Refresher, history RunLister, views config.ViewsConfig, loc *time.Location, log *logger.Logger) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{
		cell:      cell,
		refresher: refresher,
		history:   history,
		views:     views,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides time.Now, for tests.
func (h *DashboardHandler) WithClock(now func() time.Time) *DashboardHandler {
	h.now = now
	return h
}

func (h *DashboardHandler) today() time.Time {
	return h.now().In(h.loc)
}

// Health reports liveness
// @Summary Health check
// @Description Liveness check; also reports whether the first snapshot has loaded
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is up"
// @Router /health [get]
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.cell.Status()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"state":  st.State,
		"stale":  st.Stale,
		"time":   h.now().UTC(),
	})
}

// GetStatus returns snapshot freshness
// @Summary Snapshot status
// @Description Loading/ready state, staleness flag, last update time and refresh interval
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.Status
// @Router /api/v1/status [get]
func (h *DashboardHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cell.Status())
}

// GetDashboard returns every view for the selection
// @Summary Full dashboard
// @Description KPIs, series, today breakdown, site table and filter options for one selection
// @Tags dashboard
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {object} model.Dashboard
// @Failure 400 {object} map[string]interface{} "Invalid filter"
// @Failure 503 {object} map[string]interface{} "First snapshot not loaded yet"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}

	dash := pipeline.BuildDashboard(snap, sel, h.today(), h.views)
	dash.Status = h.cell.Status()
	writeJSON(w, http.StatusOK, dash)
}

// GetKPIs returns the KPI tiles
// @Summary KPI tiles
// @Description Total records, distinct sites and teams, closures and average per day for the selection
// @Tags dashboard
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {object} model.KPIs
// @Failure 503 {object} map[string]interface{} "First snapshot not loaded yet"
// @Router /api/v1/kpis [get]
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.ComputeKPIs(pipeline.Apply(snap, sel)))
}

// GetSitesSeries returns records per site
// @Summary Records per site
// @Tags series
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {array} model.NamedValue
// @Router /api/v1/series/sites [get]
func (h *DashboardHandler) GetSitesSeries(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.BySite(pipeline.Apply(snap, sel)))
}

// GetTeamsSeries returns records per team
// @Summary Records per team (top N)
// @Tags series
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {array} model.NamedValue
// @Router /api/v1/series/teams [get]
func (h *DashboardHandler) GetTeamsSeries(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.ByTeam(pipeline.Apply(snap, sel), h.views.TeamTopN))
}

// GetDatesSeries returns records per day
// @Summary Records per day
// @Tags series
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {array} model.DatedValue
// @Router /api/v1/series/dates [get]
func (h *DashboardHandler) GetDatesSeries(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.ByDate(pipeline.Apply(snap, sel)))
}

// GetRecentSeries returns the recent-days sparkline
// @Summary Recent days
// @Description One point per day for the last days (today included) over the unfiltered snapshot
// @Tags series
// @Produce json
// @Success 200 {array} model.DatedValue
// @Router /api/v1/series/recent [get]
func (h *DashboardHandler) GetRecentSeries(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Recent(snap.Records, h.today(), h.views.RecentDays))
}

// GetToday returns today's breakdown
// @Summary Today per team
// @Description Today's records per team over the unfiltered snapshot, plus the total
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.TodayBreakdown
// @Router /api/v1/today [get]
func (h *DashboardHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Today(snap.Records, h.today()))
}

// GetSiteStats returns the per-site table
// @Summary Per-site statistics
// @Tags dashboard
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {array} model.SiteStat
// @Router /api/v1/sites/stats [get]
func (h *DashboardHandler) GetSiteStats(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.SiteStats(pipeline.Apply(snap, sel)))
}

// GetServiceTypesSeries returns records per service type
// @Summary Records per service type (top N)
// @Tags series
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Success 200 {array} model.NamedValue
// @Router /api/v1/series/service-types [get]
func (h *DashboardHandler) GetServiceTypesSeries(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.ByServiceType(pipeline.Apply(snap, sel), h.views.ServiceTypeTopN))
}

// GetHeatmap returns the site x day matrix
// @Summary Records per site and day
// @Description Counts per site (rows) and day (columns) for the latest days of the selection
// @Tags series
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Param days query int false "Latest days to keep, 0 for all"
// @Success 200 {object} model.Heatmap
// @Failure 400 {object} map[string]interface{} "Invalid filter"
// @Router /api/v1/heatmap [get]
func (h *DashboardHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	days := h.views.HeatmapDays
	if v := r.URL.Query().Get("days"); v != "" {
		n := utils.ParseInt(v, -1)
		if n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("days must be a non-negative integer: %q", v))
			return
		}
		days = n
	}

	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Heatmap(pipeline.Apply(snap, sel), days))
}

// GetOptions returns the filter option sets
// @Summary Filter options
// @Description Distinct years, months, sites and teams of the unfiltered snapshot
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.FilterOptions
// @Router /api/v1/options [get]
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Options(snap))
}

// GetDailyReport returns the daily report
// @Summary Daily report
// @Description One day against another (today vs yesterday by default), per site, month to date and top sites/teams of the month
// @Tags reports
// @Produce json
// @Produce plain
// @Param date query string false "Report day YYYY-MM-DD, default today"
// @Param compare query string false "Compared day YYYY-MM-DD, default the day before date"
// @Param format query string false "json (default) or text"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Success 200 {object} model.DailyReport
// @Router /api/v1/report/daily [get]
func (h *DashboardHandler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	date, compare, err := h.reportDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, ok := h.loadSnapshot(w)
	if !ok {
		return
	}

	report := pipeline.BuildComparisonReport(snap.Records, date, compare, h.views.ReportTopN)
	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := pipeline.FormatDailyReport(w, report); err != nil {
			h.log.Warn("failed to write report", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetRecords returns one page of the record table
// @Summary Records table
// @Description Filtered records, searched case-insensitively across all columns and paginated
// @Tags records
// @Produce json
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Param search query string false "Search term"
// @Param page query int false "1-based page"
// @Param size query int false "Rows per page"
// @Success 200 {object} model.TablePage
// @Router /api/v1/records [get]
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	rows := pipeline.Search(pipeline.Apply(snap, sel), q.Get("search"))
	page := pipeline.Paginate(rows,
		utils.ParseInt(q.Get("page"), 1),
		utils.ParseInt(q.Get("size"), h.views.PageSize),
	)
	writeJSON(w, http.StatusOK, page)
}

// ExportRecords downloads the filtered records
// @Summary Export records
// @Tags records
// @Produce text/csv
// @Produce json
// @Param format query string false "csv (default) or json"
// @Param year query string false "Year or all"
// @Param month query string false "Month 1-12 or all"
// @Param site query string false "Canonical site or all"
// @Param team query string false "Canonical team or all"
// @Param type query string false "Service type or all"
// @Param from query string false "Period start YYYY-MM-DD, inclusive"
// @Param to query string false "Period end YYYY-MM-DD, inclusive"
// @Param search query string false "Search term"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{} "Unknown format"
// @Router /api/v1/records/export [get]
func (h *DashboardHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.prepare(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	contentType := map[string]string{
		"csv":  "text/csv; charset=utf-8",
		"json": "application/json",
	}[format]
	if contentType == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", pipeline.ErrUnknownExportFormat, format))
		return
	}

	rows := pipeline.Search(pipeline.Apply(snap, sel), r.URL.Query().Get("search"))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", utils.ExportFileName(snap.CapturedAt, format)))
	if err := pipeline.Export(w, format, snap.Columns, rows); err != nil {
		h.log.Warn("export failed", "format", format, "error", err)
	}
}

// TriggerRefresh forces a refresh now
// @Summary Refresh now
// @Description Fetches the source immediately, or joins the refresh already in flight
// @Tags refresh
// @Produce json
// @Success 200 {object} model.Status
// @Failure 502 {object} map[string]interface{} "Refresh failed; previous snapshot kept"
// @Failure 503 {object} map[string]interface{} "Refresh not available"
// @Router /api/v1/refresh [post]
func (h *DashboardHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, http.StatusServiceUnavailable, "refresh is not available")
		return
	}

	if _, err := h.refresher.Refresh(r.Context(), pipeline.TriggerManual); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, pipeline.ErrRefresherStopped) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]interface{}{
			"error":  err.Error(),
			"status": h.cell.Status(),
		})
		return
	}

	writeJSON(w, http.StatusOK, h.cell.Status())
}

// ListRefreshes returns the refresh history
// @Summary Refresh history
// @Tags refresh
// @Produce json
// @Param limit query int false "Max runs"
// @Success 200 {array} model.RefreshRun
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/refreshes [get]
func (h *DashboardHandler) ListRefreshes(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusOK, []model.RefreshRun{})
		return
	}

	runs, err := h.history.ListRuns(r.Context(), utils.ParseInt(r.URL.Query().Get("limit"), 50))
	if err != nil {
		h.log.Error("failed to list refresh runs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch refresh history")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
