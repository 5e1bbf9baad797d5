package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ynabviz/internal/backend"
	"ynabviz/internal/cli"
	apphttp "ynabviz/internal/http"
)

var serveRefreshLimit int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the refresh trigger and locally published charts over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serveRefreshLimit, "refresh-limit", apphttp.DefaultRefreshLimit, "Refreshes allowed per client per minute")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, os.Stdout)

	orchestrator, sink, err := backend.NewFactory(logger).CreateOrchestrator(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	srv := apphttp.NewServer(cfg.HTTPAddr, orchestrator, logger, apphttp.Options{
		Objects:      sink.Objects,
		RefreshLimit: serveRefreshLimit,
	})

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting ynabviz server", "addr", cfg.HTTPAddr, "sink", cfg.Sink)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	logger.Info("Server stopped gracefully")
	return nil
}
