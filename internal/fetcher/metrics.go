package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neox5/ocimon/internal/metric"
	"github.com/neox5/ocimon/internal/provider"
)

// Series binds a provider time series to the gauge it is published as.
type Series struct {
	Gauge     metric.Gauge
	Namespace string
	Metric    string
	Window    time.Duration
	Dimension string
	// EmptyReason is attached to ErrNoData when the query returns nothing.
	EmptyReason string
}

var (
	InstanceCPUSeries = Series{
		Gauge:     metric.InstanceCPU,
		Namespace: provider.NamespaceComputeAgent,
		Metric:    "CpuUtilization",
		Window:    time.Minute,
		Dimension: provider.DimensionResourceID,
	}
	InstanceMemorySeries = Series{
		Gauge:       metric.InstanceMemory,
		Namespace:   provider.NamespaceComputeAgent,
		Metric:      "MemoryUtilization",
		Window:      time.Minute,
		Dimension:   provider.DimensionResourceID,
		EmptyReason: "instance may be stopped",
	}
	DatabaseCPUSeries = Series{
		Gauge:     metric.DatabaseCPU,
		Namespace: provider.NamespaceDatabase,
		Metric:    "CpuUtilization",
		Window:    time.Minute,
		Dimension: provider.DimensionDatabaseID,
	}
	DatabaseStorageSeries = Series{
		Gauge:     metric.DatabaseMemory,
		Namespace: provider.NamespaceDatabase,
		Metric:    "StorageUtilization",
		Window:    60 * time.Minute,
		Dimension: provider.DimensionDatabaseID,
	}
)

// Metrics publishes the latest aggregated value of provider time series.
type Metrics struct {
	client        provider.Monitoring
	gauges        Recorder
	compartmentID string
	lookback      time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

// MetricsOption configures Metrics.
type MetricsOption func(*Metrics)

// WithLookback bounds every query to [now-d, now]. Zero keeps the
// provider's default window.
func WithLookback(d time.Duration) MetricsOption {
	return func(m *Metrics) { m.lookback = d }
}

// WithClock replaces time.Now for query windows.
func WithClock(now func() time.Time) MetricsOption {
	return func(m *Metrics) { m.now = now }
}

// NewMetrics creates a time-series fetcher querying compartmentID.
func NewMetrics(
	client provider.Monitoring,
	gauges Recorder,
	compartmentID string,
	logger *slog.Logger,
	opts ...MetricsOption,
) *Metrics {
	m := &Metrics{
		client:        client,
		gauges:        gauges,
		compartmentID: compartmentID,
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InstanceCPU publishes max CPU utilization over 1m for an instance.
func (m *Metrics) InstanceCPU(ctx context.Context, instanceID string) error {
	return m.Fetch(ctx, InstanceCPUSeries, instanceID)
}

// InstanceMemory publishes max memory utilization over 1m for an instance.
func (m *Metrics) InstanceMemory(ctx context.Context, instanceID string) error {
	return m.Fetch(ctx, InstanceMemorySeries, instanceID)
}

// DatabaseCPU publishes max CPU utilization over 1m for a database.
func (m *Metrics) DatabaseCPU(ctx context.Context, dbID string) error {
	return m.Fetch(ctx, DatabaseCPUSeries, dbID)
}

// DatabaseStorage publishes max storage utilization over 60m for a database.
func (m *Metrics) DatabaseStorage(ctx context.Context, dbID string) error {
	return m.Fetch(ctx, DatabaseStorageSeries, dbID)
}

// Fetch runs one query for resourceID and publishes the last returned point.
func (m *Metrics) Fetch(ctx context.Context, s Series, resourceID string) error {
	q := provider.Query{
		Namespace:   s.Namespace,
		Metric:      s.Metric,
		Window:      s.Window,
		Dimension:   s.Dimension,
		ResourceID:  resourceID,
		Aggregation: "max",
	}
	if m.lookback > 0 {
		q.End = m.now()
		q.Start = q.End.Add(-m.lookback)
	}

	points, err := m.client.QueryTimeSeries(ctx, m.compartmentID, q)
	if err != nil {
		return fmt.Errorf("query %s for %s: %w", s.Metric, resourceID, err)
	}

	if len(points) == 0 {
		if s.EmptyReason != "" {
			return fmt.Errorf("%s for %s: %w (%s)", s.Metric, resourceID, ErrNoData, s.EmptyReason)
		}
		return fmt.Errorf("%s for %s: %w", s.Metric, resourceID, ErrNoData)
	}

	// Points arrive oldest first; the last one is the most recent.
	v := points[len(points)-1].Value
	if err := m.gauges.Set(s.Gauge, v, resourceID); err != nil {
		return err
	}

	m.logger.Debug("published time series",
		"metric", s.Metric,
		"resource", resourceID,
		"value", v)
	return nil
}
