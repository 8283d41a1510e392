package main

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Buu205/Vietnam-stock-sub000/internal/cache"
	httpapi "github.com/Buu205/Vietnam-stock-sub000/internal/interfaces/http"
	"github.com/Buu205/Vietnam-stock-sub000/internal/metrics"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest scan report, health, and metrics over HTTP",
		Long: `Expose /healthz, /metrics, and /api/v1/scan/latest. The latest report
comes from the Redis cache populated by 'vnscan scan'.`,
		RunE: runServe,
	}
	cmd.Flags().String("listen", "", "Listen address (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.HTTP.Listen = listen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reports httpapi.ReportSource
	if cfg.Redis.Enabled {
		rc, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		reports = rc
	} else {
		log.Warn().Msg("redis disabled, latest-report endpoint will answer 503")
	}

	srv := httpapi.NewServer(cfg.HTTP.Listen, reports, metrics.NewRegistry())
	return srv.Run(ctx)
}
