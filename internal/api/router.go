package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	httpSwagger "github.com/swaggo/http-swagger"

	"go-sheet-dashboard/docs"
	"go-sheet-dashboard/internal/api/handler"
	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/observability"
	"go-sheet-dashboard/pkg/router"
)

// RegisterRoutes mounts the dashboard API, metrics and API docs on r.
func RegisterRoutes(r *router.Router, h *handler.DashboardHandler, metrics *observability.Metrics) {
	r.GET("/health", h.Health)

	r.GET("/api/v1/status", h.GetStatus)
	r.GET("/api/v1/dashboard", h.GetDashboard)
	r.GET("/api/v1/kpis", h.GetKPIs)
	r.GET("/api/v1/series/sites", h.GetSitesSeries)
	r.GET("/api/v1/series/teams", h.GetTeamsSeries)
	r.GET("/api/v1/series/dates", h.GetDatesSeries)
	r.GET("/api/v1/series/recent", h.GetRecentSeries)
	r.GET("/api/v1/series/service-types", h.GetServiceTypesSeries)
	r.GET("/api/v1/heatmap", h.GetHeatmap)
	r.GET("/api/v1/today", h.GetToday)
	r.GET("/api/v1/sites/stats", h.GetSiteStats)
	r.GET("/api/v1/options", h.GetOptions)
	r.GET("/api/v1/report/daily", h.GetDailyReport)
	r.GET("/api/v1/records/export", h.ExportRecords)
	r.GET("/api/v1/records", h.GetRecords)

	r.POST("/api/v1/refresh", h.TriggerRefresh)
	r.GET("/api/v1/refreshes", h.ListRefreshes)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.Prefix("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

// NewHTTPHandler builds the complete HTTP stack: routes, metrics, CORS,
// compression and panic recovery.
func NewHTTPHandler(cfg config.ServerConfig, h *handler.DashboardHandler, metrics *observability.Metrics, log *logger.Logger) http.Handler {
	docs.SwaggerInfo.Host = ""

	r := router.New(log.Zap())
	r.Use(metrics.Middleware(router.RouteName))
	RegisterRoutes(r, h, metrics)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var stack http.Handler = r.Handler()
	stack = handlers.CompressHandler(stack)
	stack = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(stack)
	stack = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log}),
		handlers.PrintRecoveryStack(false),
	)(stack)

	return stack
}

type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.log.Error("panic recovered", "detail", args)
}
