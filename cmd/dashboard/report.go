package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"go-sheet-dashboard/internal/model"
	"go-sheet-dashboard/internal/pipeline"
)

func newReportCmd() *cobra.Command {
	var (
		asJSON  bool
		topN    int
		date    string
		compare string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the daily maintenance report",
		Long: "Compare one day with another. Without --date the report covers today;\n" +
			"without --compare it is compared with the day before --date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			applyIntFlag(cmd, "top", &cfg.Views.ReportTopN, topN)

			day, prev, err := reportDays(date, compare, cfg.Normalize.Location())
			if err != nil {
				return err
			}

			snap, err := ingestOnce(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			report := pipeline.BuildComparisonReport(snap.Records, day, prev, cfg.Views.ReportTopN)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return pipeline.FormatDailyReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&topN, "top", 0, "entries per ranking (overrides config)")
	cmd.Flags().StringVar(&date, "date", "", "report day (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&compare, "compare", "", "day to compare with (YYYY-MM-DD), default the day before --date")

	return cmd
}

func reportDays(date, compare string, loc *time.Location) (time.Time, time.Time, error) {
	now := time.Now().In(loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if date != "" {
		d, err := model.ParseDay(date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		day = d
	}

	prev := day.AddDate(0, 0, -1)
	if compare != "" {
		c, err := model.ParseDay(compare, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		prev = c
	}
	return day, prev, nil
}
