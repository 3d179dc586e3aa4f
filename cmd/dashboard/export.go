package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go-sheet-dashboard/internal/pipeline"
	"go-sheet-dashboard/pkg/utils"
)

func newExportCmd() *cobra.Command {
	var (
		sel    selectionFlags
		format string
		outDir string
		search string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered records as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := sel.selection()
			if err != nil {
				return err
			}
			if format != "csv" && format != "json" {
				return fmt.Errorf("%w: %q", pipeline.ErrUnknownExportFormat, format)
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
			records := pipeline.Search(pipeline.Apply(snap, selection), search)

			var w io.Writer = cmd.OutOrStdout()
			if outDir != "" {
				om := utils.NewOutputManager(outDir)
				path, err := om.GetOutputFilePath(snap.CapturedAt.Format("20060102"), utils.ExportFileName(snap.CapturedAt, format))
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f

				log.Info("exporting records", "path", path, "type", om.GetFileType(path), "records", len(records))
			}

			return pipeline.Export(w, format, snap.Columns, records)
		},
	}

	sel.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write into this directory instead of stdout")
	cmd.Flags().StringVar(&search, "search", "", "keep only records containing this text")

	return cmd
}
