package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/neox5/ocimon/internal/metric"
	"github.com/neox5/ocimon/internal/provider"
	"github.com/neox5/ocimon/internal/system"
)

var errUpstream = errors.New("upstream unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recorder stores gauge writes keyed by name and joined label values.
type recorder struct {
	values map[string]float64
	writes int
}

func newRecorder() *recorder {
	return &recorder{values: make(map[string]float64)}
}

func (r *recorder) Set(g metric.Gauge, value float64, labelValues ...string) error {
	r.values[key(g, labelValues...)] = value
	r.writes++
	return nil
}

func (r *recorder) get(g metric.Gauge, labelValues ...string) (float64, bool) {
	v, ok := r.values[key(g, labelValues...)]
	return v, ok
}

func key(g metric.Gauge, labelValues ...string) string {
	return string(g) + "{" + strings.Join(labelValues, ",") + "}"
}

type fakeMonitoring struct {
	points  map[string][]provider.DataPoint // by rendered query
	err     error
	queries []provider.Query
	comps   []string
}

func (f *fakeMonitoring) QueryTimeSeries(_ context.Context, compartmentID string, q provider.Query) ([]provider.DataPoint, error) {
	f.queries = append(f.queries, q)
	f.comps = append(f.comps, compartmentID)
	if f.err != nil {
		return nil, f.err
	}
	return f.points[q.String()], nil
}

type fakeLoadBalancers struct {
	states    map[string]string
	sets      map[string][]provider.BackendSet
	health    map[string]string // by "lb/set"
	getErr    error
	listErr   error
	healthErr map[string]error // by "lb/set"
	calls     []string
}

func (f *fakeLoadBalancers) GetLoadBalancer(_ context.Context, id string) (provider.LoadBalancer, error) {
	f.calls = append(f.calls, "get:"+id)
	if f.getErr != nil {
		return provider.LoadBalancer{}, f.getErr
	}
	return provider.LoadBalancer{ID: id, LifecycleState: f.states[id]}, nil
}

func (f *fakeLoadBalancers) ListBackendSets(_ context.Context, id string) ([]provider.BackendSet, error) {
	f.calls = append(f.calls, "list:"+id)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sets[id], nil
}

func (f *fakeLoadBalancers) GetBackendSetHealth(_ context.Context, id, name string) (provider.BackendSetHealth, error) {
	f.calls = append(f.calls, "health:"+id+"/"+name)
	if err := f.healthErr[id+"/"+name]; err != nil {
		return provider.BackendSetHealth{}, err
	}
	return provider.BackendSetHealth{Status: f.health[id+"/"+name]}, nil
}

type fakeStats struct {
	mem, disk float64
	net       system.NetCounters
	err       error
}

func (f *fakeStats) MemoryPercent(context.Context) (float64, error) { return f.mem, f.err }

func (f *fakeStats) DiskPercent(context.Context) (float64, error) { return f.disk, f.err }

func (f *fakeStats) NetIO(context.Context) (system.NetCounters, error) { return f.net, f.err }
