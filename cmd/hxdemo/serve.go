package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hxforge"
	"github.com/dmitrymomot/hxforge/middlewares"
	"github.com/dmitrymomot/hxforge/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(path)
		if err != nil {
			return err
		}

		if addr, _ := cmd.Flags().GetString("address"); addr != "" {
			cfg.Address = addr
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}

		log := logger.NewWithSentry(cfg.Log, cfg.Sentry,
			middlewares.RequestIDExtractor(),
			middlewares.HTMXExtractor(),
		)

		app, err := newApp(cfg, log, prometheus.NewRegistry())
		if err != nil {
			return err
		}

		log.Info("starting hxdemo", "address", cfg.Address, "metrics", cfg.Metrics.Enabled)
		return app.Run(cfg.Address,
			hxforge.Logger(log),
			hxforge.ShutdownTimeout(cfg.ShutdownTimeout),
			hxforge.WithContext(cmd.Context()),
			hxforge.ShutdownHook(func(context.Context) error {
				sentry.Flush(2 * time.Second)
				return nil
			}),
		)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("address", "a", "", "Listen address, overrides the config file")
	serveCmd.Flags().String("log-level", "", "Log level: debug, info, warn or error")
}
