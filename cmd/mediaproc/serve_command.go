package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Belphemur/MediaProc/internal/config"
	"github.com/Belphemur/MediaProc/internal/errortracking"
	"github.com/Belphemur/MediaProc/internal/metrics"
	"github.com/Belphemur/MediaProc/internal/server"
	"github.com/Belphemur/MediaProc/internal/services"
	"github.com/Belphemur/MediaProc/internal/workspace"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var address string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the media processing HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.Server.Address = address
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides server.address)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")
	return cmd
}

// serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logger := config.GetLogger()

	logger.Info().
		Str("temp_dir", cfg.TempDir).
		Str("ffmpeg", cfg.FFmpegBinary).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Application started with configuration")

	ws := workspace.New(cfg.TempDir)
	if err := ws.Ensure(); err != nil {
		return err
	}

	reporter := errortracking.FromConfig(cfg)
	defer reporter.Flush()

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	e := server.NewHTTPServer(server.Dependencies{
		Workspace: ws,
		Extractor: a.audioExtractor(),
		Burner:    a.subtitleBurner(),
		Cleaner:   services.NewCleaner(),
		Reporter:  reporter,
	})

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", address).Msg("Starting HTTP server")
		errCh <- e.Start(address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
