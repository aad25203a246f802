package fetcher

import (
	"context"
	"log/slog"

	"github.com/neox5/ocimon/internal/metric"
	"github.com/neox5/ocimon/internal/system"
)

// Host publishes local host counters under an instance id label.
// The values describe the machine running the exporter, not the instance.
type Host struct {
	stats  system.Stats
	gauges Recorder
	logger *slog.Logger
}

// NewHost creates a host stats publisher.
func NewHost(stats system.Stats, gauges Recorder, logger *slog.Logger) *Host {
	return &Host{
		stats:  stats,
		gauges: gauges,
		logger: logger,
	}
}

// MemoryUsage publishes local memory usage in percent.
func (h *Host) MemoryUsage(ctx context.Context, instanceID string) error {
	pct, err := h.stats.MemoryPercent(ctx)
	if err != nil {
		return err
	}
	return h.gauges.Set(metric.HostMemoryUsage, pct, instanceID)
}

// DiskUsage publishes local filesystem usage in percent.
func (h *Host) DiskUsage(ctx context.Context, instanceID string) error {
	pct, err := h.stats.DiskPercent(ctx)
	if err != nil {
		return err
	}
	return h.gauges.Set(metric.HostDiskUsage, pct, instanceID)
}

// NetworkIO publishes cumulative bytes received and sent.
func (h *Host) NetworkIO(ctx context.Context, instanceID string) error {
	nc, err := h.stats.NetIO(ctx)
	if err != nil {
		return err
	}
	if err := h.gauges.Set(metric.HostNetworkIn, float64(nc.BytesRecv), instanceID); err != nil {
		return err
	}
	if err := h.gauges.Set(metric.HostNetworkOut, float64(nc.BytesSent), instanceID); err != nil {
		return err
	}

	h.logger.Debug("published network counters",
		"instance", instanceID,
		"recv", nc.BytesRecv,
		"sent", nc.BytesSent)
	return nil
}
