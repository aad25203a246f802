package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neox5/ocimon/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName identifies ocimon's instrumentation scope.
const meterName = "ocimon"

// OTELExporter pushes the registry's gauges to an OTEL collector.
type OTELExporter struct {
	config        *config.OTELExportConfig
	meterProvider *sdkmetric.MeterProvider
	meter         otelmetric.Meter
	gatherer      prometheus.Gatherer
	gauges        map[string]otelmetric.Float64ObservableGauge
}

// NewOTELExporter creates a new OTEL exporter reading from gatherer.
func NewOTELExporter(cfg *config.OTELExportConfig, gatherer prometheus.Gatherer) (*OTELExporter, error) {
	reader, err := createPeriodicReader(cfg)
	if err != nil {
		return nil, err
	}
	return newOTELExporter(cfg, gatherer, reader)
}

// newOTELExporter wires instruments to an arbitrary reader.
func newOTELExporter(cfg *config.OTELExportConfig, gatherer prometheus.Gatherer, reader sdkmetric.Reader) (*OTELExporter, error) {
	res, err := createOTELResource(cfg.Resource)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)

	e := &OTELExporter{
		config:        cfg,
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(meterName),
		gatherer:      gatherer,
	}

	if err := registerOTELInstruments(e); err != nil {
		return nil, err
	}

	return e, nil
}

// Start waits until ctx is cancelled; the periodic reader pushes on its own.
func (e *OTELExporter) Start(ctx context.Context) error {
	slog.Info("starting otel exporter",
		"endpoint", e.config.GetEndpoint(),
		"transport", e.config.Transport,
		"push_interval", e.config.Interval,
	)

	<-ctx.Done()
	return e.Stop()
}

// Stop flushes pending data and shuts the meter provider down.
func (e *OTELExporter) Stop() error {
	slog.Info("shutting down otel exporter")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("otel shutdown: %w", err)
	}
	return nil
}
