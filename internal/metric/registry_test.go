package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAllGauges(t *testing.T) {
	r := New()
	require.Len(t, r.gauges, len(Descriptors))

	// Families only appear once they hold a series.
	count, err := testutil.GatherAndCount(r.PrometheusRegistry())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSet_OverwritesValue(t *testing.T) {
	r := New()

	require.NoError(t, r.Set(InstanceCPU, 10, "i-1"))
	require.NoError(t, r.Set(InstanceCPU, 35, "i-1"))
	require.NoError(t, r.Set(InstanceCPU, 5, "i-2"))

	assert.Equal(t, 35.0, testutil.ToFloat64(r.gauges[InstanceCPU].WithLabelValues("i-1")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.gauges[InstanceCPU].WithLabelValues("i-2")))

	count, err := testutil.GatherAndCount(r.PrometheusRegistry(), string(InstanceCPU))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSet_TwoLabels(t *testing.T) {
	r := New()

	require.NoError(t, r.Set(BackendSetHealth, 3, "lb-1", "bs-1"))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.gauges[BackendSetHealth].WithLabelValues("lb-1", "bs-1")))
}

func TestSet_Errors(t *testing.T) {
	r := New()

	assert.Error(t, r.Set(Gauge("nope"), 1, "x"))
	assert.Error(t, r.Set(BackendSetHealth, 1, "lb-1"))
	assert.Error(t, r.Set(InstanceCPU, 1))
}
