package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neox5/ocimon/internal/config"
	"github.com/neox5/ocimon/internal/provider"
	"github.com/neox5/ocimon/internal/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMonitoring struct {
	series map[string][]float64 // by rendered query
}

func (f *fakeMonitoring) QueryTimeSeries(_ context.Context, _ string, q provider.Query) ([]provider.DataPoint, error) {
	values, ok := f.series[q.String()]
	if !ok {
		return nil, errors.New("query failed")
	}
	points := make([]provider.DataPoint, len(values))
	for i, v := range values {
		points[i] = provider.DataPoint{Value: v}
	}
	return points, nil
}

type fakeLoadBalancers struct{}

func (fakeLoadBalancers) GetLoadBalancer(_ context.Context, id string) (provider.LoadBalancer, error) {
	return provider.LoadBalancer{ID: id, LifecycleState: "ACTIVE"}, nil
}

func (fakeLoadBalancers) ListBackendSets(context.Context, string) ([]provider.BackendSet, error) {
	return []provider.BackendSet{{Name: "bs-1"}}, nil
}

func (fakeLoadBalancers) GetBackendSetHealth(context.Context, string, string) (provider.BackendSetHealth, error) {
	return provider.BackendSetHealth{Status: "CRITICAL"}, nil
}

type fakeStats struct{}

func (fakeStats) MemoryPercent(context.Context) (float64, error) { return 50, nil }

func (fakeStats) DiskPercent(context.Context) (float64, error) { return 25, nil }

func (fakeStats) NetIO(context.Context) (system.NetCounters, error) {
	return system.NetCounters{BytesRecv: 2048, BytesSent: 1024}, nil
}

func loadConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	raw, err := config.ParseBytes([]byte(yaml))
	require.NoError(t, err)
	cfg, err := config.Resolve(raw)
	require.NoError(t, err)
	return cfg
}

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

func TestBuild_OneCycleEndToEnd(t *testing.T) {
	cfg := loadConfig(t, `
resources:
  instances:
    - instance_id: i-1
      load_balancer_id: lb-1
  databases:
    - db_id: db-1
settings:
  internal_metrics:
    enabled: true
`)
	mon := &fakeMonitoring{series: map[string][]float64{
		`CpuUtilization[1m]{resourceId="i-1"}.max()`:                {10, 20, 35},
		`MemoryUtilization[1m]{resourceId="i-1"}.max()`:             {},
		`CpuUtilization[1m]{resourceId_database="db-1"}.max()`:      {7},
		`StorageUtilization[60m]{resourceId_database="db-1"}.max()`: {81},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := Build(cfg, mon, fakeLoadBalancers{}, fakeStats{}, "ocid1.tenancy", logger)
	require.NoError(t, err)
	require.NotNil(t, a.PrometheusExporter)
	require.NotNil(t, a.Monitor)
	assert.Nil(t, a.OTELExporter)

	r := a.Poller.Cycle(context.Background())
	assert.Equal(t, 9, r.Operations)
	assert.Equal(t, 1, r.NoData)
	assert.Zero(t, r.Failures)

	body := scrape(t, a.PrometheusExporter.Handler())
	for _, want := range []string{
		`oci_instance_cpu_utilization{instance_id="i-1"} 35`,
		`instance_memory_usage{instance_id="i-1"} 50`,
		`instance_disk_usage{instance_id="i-1"} 25`,
		`instance_network_in{instance_id="i-1"} 2048`,
		`instance_network_out{instance_id="i-1"} 1024`,
		`oci_load_balancer_health{load_balancer_id="lb-1"} 2`,
		`oci_backend_set_health{backend_set_name="bs-1",load_balancer_id="lb-1"} 3`,
		`oci_db_cpu_utilization{db_id="db-1"} 7`,
		`oci_db_memory_utilization{db_id="db-1"} 81`,
		`ocimon_poll_cycles_total 1`,
		`# TYPE ocimon_process_goroutines gauge`,
		`# TYPE ocimon_process_resident_memory_bytes gauge`,
	} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "oci_instance_memory_utilization{")
}

func TestBuild_InternalMetricsDisabled(t *testing.T) {
	cfg := loadConfig(t, `
resources:
  instances:
    - instance_id: i-1
`)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := Build(cfg, &fakeMonitoring{}, fakeLoadBalancers{}, fakeStats{}, "ocid1.tenancy", logger)
	require.NoError(t, err)
	assert.Nil(t, a.Monitor)

	a.Poller.Cycle(context.Background())

	body := scrape(t, a.PrometheusExporter.Handler())
	assert.NotContains(t, body, "ocimon_process_")
	assert.NotContains(t, body, "ocimon_poll_cycles_total")
}
