package pipeline

import (
	"time"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/model"
)

// BuildDashboard derives every view for one selection. Recent and Today use
// the whole snapshot; everything else uses the filtered subset.
func BuildDashboard(snap *model.Snapshot, sel model.FilterSelection, now time.Time, views config.ViewsConfig) model.Dashboard {
	filtered := Apply(snap, sel)

	var all []model.CanonicalRecord
	if snap != nil {
		all = snap.Records
	}

	return model.Dashboard{
		Selection: sel,
		Options:   Options(snap),
		KPIs:      ComputeKPIs(filtered),
		BySite:    BySite(filtered),
		ByTeam:    ByTeam(filtered, views.TeamTopN),
		ByDate:    ByDate(filtered),
		Recent:    Recent(all, now, views.RecentDays),
		Today:     Today(all, now),
		SiteStats: SiteStats(filtered),

		ByServiceType: ByServiceType(filtered, views.ServiceTypeTopN),
		Heatmap:       Heatmap(filtered, views.HeatmapDays),
	}
}
