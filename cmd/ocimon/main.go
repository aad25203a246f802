package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/neox5/ocimon/internal/app"
	"github.com/neox5/ocimon/internal/config"
	"github.com/neox5/ocimon/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "ocimon",
		Usage:   "Prometheus exporter for OCI instances, load balancers and databases",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to configuration file",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "prometheus exporter port (overrides export.prometheus.port)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	debug := cmd.Bool("debug")

	// Configure logging level
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting ocimon", "version", version.String(), "config", configPath)

	// Load configuration
	slog.Debug("--- Configuration Loading ---")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.IsSet("port") {
		if err := overridePort(cfg, cmd.Int("port")); err != nil {
			return err
		}
	}

	slog.Debug("--- Client Creation ---")
	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Setup graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("--- Exporter Initialization ---")
	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	if application.PrometheusExporter != nil {
		wg.Go(func() {
			if err := application.PrometheusExporter.Start(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("prometheus exporter: %w", err)
			}
		})
	}

	if application.OTELExporter != nil {
		wg.Go(func() {
			if err := application.OTELExporter.Start(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("otel exporter: %w", err)
			}
		})
	}

	if application.Monitor != nil {
		application.Monitor.Run(shutdownCtx)
	}

	slog.Debug("--- Poller Running ---")
	wg.Go(func() {
		_ = application.Poller.Run(shutdownCtx)
	})

	// Wait for shutdown or error
	var runErr error
	select {
	case runErr = <-errChan:
		slog.Error("exporter error", "error", runErr)
		stop() // Cancel context to trigger shutdown
	case <-shutdownCtx.Done():
		// Graceful shutdown triggered
	}

	slog.Debug("--- Shutdown Initiated ---")

	// The exporters and the poller return once shutdownCtx is cancelled
	wg.Wait()
	if application.Monitor != nil {
		application.Monitor.Wait()
	}

	slog.Info("shutdown complete")
	return runErr
}

// overridePort replaces the configured Prometheus port, enabling the
// endpoint if the file left it off.
func overridePort(cfg *config.Config, port int) error {
	if cfg.Export.Prometheus == nil {
		cfg.Export.Prometheus = &config.PrometheusExportConfig{}
	}
	cfg.Export.Prometheus.Enabled = true
	cfg.Export.Prometheus.Port = port
	return cfg.Export.Prometheus.Validate()
}
