package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go-sheet-dashboard/internal/api"
	"go-sheet-dashboard/internal/api/handler"
	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/logger"
	"go-sheet-dashboard/internal/observability"
	"go-sheet-dashboard/internal/pipeline"
	"go-sheet-dashboard/internal/store"
	"go-sheet-dashboard/pkg/router"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		interval string
		dbPath   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API and refresh the snapshot in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigWithOverrides(cmd)
			if err != nil {
				return err
			}
			applyStringFlag(cmd, "addr", &cfg.Server.Addr, addr)
			applyStringFlag(cmd, "interval", &cfg.Refresh.Interval, interval)
			applyStringFlag(cmd, "db", &cfg.Store.Path, dbPath)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&interval, "interval", "", "refresh interval, e.g. 5m (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "refresh history database (overrides config)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	metrics := observability.NewMetrics()
	cell := pipeline.NewSnapshotCell(cfg.Refresh.GetInterval())
	defer cell.Close()

	ingester := newIngester(cfg, log)
	refresher := pipeline.NewRefresher(cell, ingester, cfg.Refresh.GetInterval(), log,
		pipeline.WithMetrics(metrics),
		pipeline.WithRecorder(st),
	)

	h := handler.NewDashboardHandler(cell, refresher, st, cfg.Views, cfg.Normalize.Location(), log)
	httpHandler := api.NewHTTPHandler(cfg.Server, h, metrics, log)

	log.Info("starting dashboard",
		"addr", cfg.Server.Addr,
		"source", cfg.Source.GetSource(),
		"interval", cfg.Refresh.GetInterval(),
		"store", cfg.Store.Path,
	)

	handle := refresher.Start(ctx)
	defer handle.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return router.Start(gctx, cfg.Server.Addr, httpHandler, cfg.Server.GetShutdownTimeout(), log.Zap())
	})

	if cfg.Source.IsLocalFile() && cfg.Source.Watch {
		g.Go(func() error {
			return pipeline.WatchFile(gctx, cfg.Source.File, log, func() {
				if _, err := refresher.Refresh(gctx, pipeline.TriggerWatch); err != nil && gctx.Err() == nil {
					log.Warn("refresh after file change failed", "error", err)
				}
			})
		})
	}

	if cfg.Store.HistoryLimit > 0 {
		g.Go(func() error {
			pruneHistory(gctx, cell, st, cfg.Store.HistoryLimit, log)
			return nil
		})
	}

	err = g.Wait()
	log.Info("dashboard stopped")
	return err
}

// pruneHistory trims the refresh history after every published snapshot.
func pruneHistory(ctx context.Context, cell *pipeline.SnapshotCell, st *store.Store, keep int, log *logger.Logger) {
	updates, cancel := cell.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			n, err := st.PruneRuns(ctx, keep)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn("failed to prune refresh history", "error", err)
				}
				continue
			}
			if n > 0 {
				log.Debug("pruned refresh history", "removed", n)
			}
		}
	}
}

func newIngester(cfg *config.Config, log *logger.Logger) *pipeline.Ingester {
	normalizer := pipeline.NewNormalizer(cfg.Normalize, cfg.Source.Columns)
	fetcher := pipeline.NewFetcher(cfg.Source, cfg.Fetch, log)
	return pipeline.NewIngester(fetcher, normalizer, log)
}
