// Package main provides the CLI entrypoint for the sheet dashboard.
//
// @title Sheet Dashboard API
// @version 1.0
// @description Read-only analytics over the maintenance spreadsheet export.
// @BasePath /
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
)

var (
	configPath string
	logLevel   string
	sourceURL  string
	sourceFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "Read-only analytics over a spreadsheet CSV export",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "url", "", "CSV export URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sourceFile, "file", "", "local CSV file (overrides config)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfigWithOverrides(cmd)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}

func loadConfigWithOverrides(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("url") {
		cfg.Source.URL = sourceURL
		cfg.Source.File = ""
	}
	if cmd.Flags().Changed("file") {
		cfg.Source.File = sourceFile
		cfg.Source.URL = ""
	}
	applyStringFlag(cmd, "log-level", &cfg.Logging.Level, logLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}
