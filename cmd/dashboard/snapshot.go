package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/internal/pipeline"
	"go-sheet-dashboard/pkg/utils"
)

// selectionFlags are the filter flags shared by the one-shot commands.
type selectionFlags struct {
	year        string
	month       string
	site        string
	team        string
	serviceType string
	from        string
	to          string
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.year, "year", "all", "filter by service year")
	cmd.Flags().StringVar(&f.month, "month", "all", "filter by service month (1-12)")
	cmd.Flags().StringVar(&f.site, "site", "all", "filter by site")
	cmd.Flags().StringVar(&f.team, "team", "all", "filter by team")
	cmd.Flags().StringVar(&f.serviceType, "type", "all", "filter by service type")
	cmd.Flags().StringVar(&f.from, "from", "all", "first service day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "all", "last service day to include (YYYY-MM-DD)")
}

func (f *selectionFlags) selection() (model.FilterSelection, error) {
	sel, err := model.ParseFilterSelection(f.year, f.month, f.site, f.team)
	if err != nil {
		return model.FilterSelection{}, err
	}
	return sel.WithServiceType(f.serviceType).WithPeriod(f.from, f.to)
}

// ingestOnce fetches and normalizes the source a single time.
func ingestOnce(ctx context.Context, cfg *config.Config, log *logger.Logger) (*model.Snapshot, error) {
	snap, err := newIngester(cfg, log).Ingest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Source.GetSource(), err)
	}
	return snap, nil
}

func newSnapshotCmd() *cobra.Command {
	var (
		sel    selectionFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Load the source once and print KPIs and per-site totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := sel.selection()
			if err != nil {
				return err
			}

			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			snap, err := ingestOnce(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			now := time.Now().In(cfg.Normalize.Location())
			dash := pipeline.BuildDashboard(snap, selection, now, cfg.Views)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(dash)
			}
			return printSnapshot(out, snap, dash)
		},
	}

	sel.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full dashboard as JSON")

	return cmd
}

func printSnapshot(w io.Writer, snap *model.Snapshot, dash model.Dashboard) error {
	k := dash.KPIs

	fmt.Fprintf(w, "Rows read:     %d\n", snap.Stats.RowsRead)
	fmt.Fprintf(w, "Records kept:  %d\n", snap.Stats.Kept)
	fmt.Fprintf(w, "Rows dropped:  %d\n", snap.Stats.DroppedTotal())
	for _, reason := range []string{model.DropInvalidDate, model.DropEmptySite, model.DropYearOutOfRange} {
		if n := snap.Stats.Dropped[reason]; n > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", reason, n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Services:      %d\n", k.Total)
	fmt.Fprintf(w, "Sites:         %d\n", k.Sites)
	fmt.Fprintf(w, "Teams:         %d\n", k.Teams)
	fmt.Fprintf(w, "Closed:        %d\n", k.Closed)
	fmt.Fprintf(w, "Service days:  %d\n", k.ServiceDays)
	fmt.Fprintf(w, "Avg per day:   %.1f\n", k.AveragePerDay)
	fmt.Fprintf(w, "Today (%s): %d\n", dash.Today.Date, dash.Today.Total)

	if len(dash.ByServiceType) > 0 {
		fmt.Fprintln(w, "\nService types")
		for _, v := range dash.ByServiceType {
			fmt.Fprintf(w, "  %-24s %d\n", v.Name, v.Value)
		}
	}

	if len(dash.SiteStats) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(dash.SiteStats))
	for _, s := range dash.SiteStats {
		rows = append(rows, []string{
			s.Site,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Teams),
			strconv.Itoa(s.Closed),
			strconv.FormatFloat(s.ClosedPct, 'f', 1, 64) + "%",
		})
	}

	fmt.Fprintln(w)
	for _, line := range utils.FormatTable(
		[]string{"Site", "Services", "Teams", "Closed", "Closed %"},
		rows,
		map[int]bool{1: true, 2: true, 3: true, 4: true},
	) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
