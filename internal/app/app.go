package app

import (
	"fmt"
	"log/slog"

	"github.com/neox5/ocimon/internal/config"
	"github.com/neox5/ocimon/internal/exporter"
	"github.com/neox5/ocimon/internal/fetcher"
	"github.com/neox5/ocimon/internal/metric"
	"github.com/neox5/ocimon/internal/monitor"
	"github.com/neox5/ocimon/internal/poller"
	"github.com/neox5/ocimon/internal/provider"
	"github.com/neox5/ocimon/internal/system"
)

// App holds initialized application components.
type App struct {
	Config             *config.Config
	Metrics            *metric.Registry
	Poller             *poller.Poller
	Monitor            *monitor.Monitor
	PrometheusExporter *exporter.PrometheusExporter
	OTELExporter       *exporter.OTELExporter
}

// New initializes the application against the OCI APIs and the local host.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	client, err := provider.NewOCI(provider.Credentials{
		ConfigFile:  cfg.OCI.ConfigFile,
		Profile:     cfg.OCI.Profile,
		Tenancy:     cfg.OCI.Tenancy,
		User:        cfg.OCI.User,
		Fingerprint: cfg.OCI.Fingerprint,
		KeyFile:     cfg.OCI.KeyFile,
		Passphrase:  cfg.OCI.Passphrase,
		Region:      cfg.OCI.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oci client: %w", err)
	}

	compartmentID := cfg.OCI.CompartmentID
	if compartmentID == "" {
		compartmentID = client.Tenancy()
	}

	return Build(cfg, client, client, system.NewHost(cfg.Settings.DiskPath), compartmentID, logger)
}

// Build wires the application from explicit collaborators.
func Build(
	cfg *config.Config,
	mon provider.Monitoring,
	lbs provider.LoadBalancers,
	stats system.Stats,
	compartmentID string,
	logger *slog.Logger,
) (*App, error) {
	metrics := metric.New()

	pollerOpts := []poller.Option{
		poller.WithInterval(cfg.Settings.Interval),
		poller.WithTimeout(cfg.Settings.FetchTimeout),
	}

	var procMon *monitor.Monitor
	if cfg.Settings.InternalMetrics.Enabled {
		in := poller.NewInstruments()
		metrics.MustRegister(in.Collectors()...)
		pollerOpts = append(pollerOpts, poller.WithInstruments(in))

		var err error
		procMon, err = monitor.New(cfg.Settings.InternalMetrics.Interval, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create process monitor: %w", err)
		}
		metrics.MustRegister(procMon.Collectors()...)
	}

	instances := make([]poller.Instance, 0, len(cfg.Resources.Instances))
	for _, inst := range cfg.Resources.Instances {
		instances = append(instances, poller.Instance{ID: inst.InstanceID, LoadBalancerID: inst.LoadBalancerID})
	}
	databases := make([]poller.Database, 0, len(cfg.Resources.Databases))
	for _, db := range cfg.Resources.Databases {
		databases = append(databases, poller.Database{ID: db.DBID})
	}

	p := poller.New(
		instances,
		databases,
		fetcher.NewMetrics(mon, metrics, compartmentID, logger, fetcher.WithLookback(cfg.Settings.Lookback)),
		fetcher.NewTopology(lbs, metrics, logger),
		fetcher.NewHost(stats, metrics, logger),
		logger,
		pollerOpts...,
	)

	var promExporter *exporter.PrometheusExporter
	var otelExporter *exporter.OTELExporter

	// Create Prometheus exporter if enabled
	if cfg.Export.PrometheusEnabled() {
		promExporter = exporter.NewPrometheusExporter(
			cfg.Export.Prometheus.Port,
			cfg.Export.Prometheus.Path,
			metrics.PrometheusRegistry(),
			cfg.Settings.InternalMetrics.Enabled,
		)
	}

	// Create OTEL exporter if enabled
	if cfg.Export.OTELEnabled() {
		var err error
		otelExporter, err = exporter.NewOTELExporter(cfg.Export.OTEL, metrics.PrometheusRegistry())
		if err != nil {
			return nil, fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
	}

	return &App{
		Config:             cfg,
		Metrics:            metrics,
		Poller:             p,
		Monitor:            procMon,
		PrometheusExporter: promExporter,
		OTELExporter:       otelExporter,
	}, nil
}
