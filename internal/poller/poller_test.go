package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/neox5/ocimon/internal/fetcher"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

// fakes records every call as "operation:resource" and fails on demand.
type fakes struct {
	calls     []string
	fail      map[string]error
	deadlines []bool
}

func (f *fakes) call(ctx context.Context, op, id string) error {
	f.calls = append(f.calls, op+":"+id)
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	return f.fail[op+":"+id]
}

func (f *fakes) InstanceCPU(ctx context.Context, id string) error {
	return f.call(ctx, "cpu", id)
}

func (f *fakes) InstanceMemory(ctx context.Context, id string) error {
	return f.call(ctx, "mem", id)
}

func (f *fakes) DatabaseCPU(ctx context.Context, id string) error {
	return f.call(ctx, "dbcpu", id)
}

func (f *fakes) DatabaseStorage(ctx context.Context, id string) error {
	return f.call(ctx, "dbstorage", id)
}

func (f *fakes) LoadBalancerStatus(ctx context.Context, id string) error {
	return f.call(ctx, "lb", id)
}

func (f *fakes) BackendSetHealth(ctx context.Context, id string) error {
	return f.call(ctx, "bs", id)
}

func (f *fakes) MemoryUsage(ctx context.Context, id string) error {
	return f.call(ctx, "hostmem", id)
}

func (f *fakes) DiskUsage(ctx context.Context, id string) error {
	return f.call(ctx, "hostdisk", id)
}

func (f *fakes) NetworkIO(ctx context.Context, id string) error {
	return f.call(ctx, "hostnet", id)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPoller(f *fakes, instances []Instance, databases []Database, opts ...Option) *Poller {
	return New(instances, databases, f, f, f, discardLogger(), opts...)
}

func fourInstances() []Instance {
	var out []Instance
	for i := 1; i <= 4; i++ {
		out = append(out, Instance{ID: fmt.Sprintf("i-%d", i), LoadBalancerID: "lb-1"})
	}
	return out
}

func TestCycle_Order(t *testing.T) {
	f := &fakes{}
	p := newPoller(f, []Instance{{ID: "i-1", LoadBalancerID: "lb-1"}}, []Database{{ID: "db-1"}})

	r := p.Cycle(context.Background())

	assert.Equal(t, []string{
		"cpu:i-1",
		"mem:i-1",
		"hostmem:i-1",
		"hostdisk:i-1",
		"hostnet:i-1",
		"lb:lb-1",
		"bs:lb-1",
		"dbcpu:db-1",
		"dbstorage:db-1",
	}, f.calls)
	assert.Equal(t, 9, r.Operations)
	assert.Zero(t, r.Failures)
}

func TestCycle_OperationCount(t *testing.T) {
	f := &fakes{}
	p := newPoller(f, fourInstances(), []Database{{ID: "db-1"}})

	r := p.Cycle(context.Background())

	assert.Equal(t, 4*7+1*2, r.Operations)
	assert.Len(t, f.calls, 30)
}

func TestCycle_IsolatesFailures(t *testing.T) {
	f := &fakes{fail: map[string]error{
		"cpu:i-1": errUpstream,
		"lb:lb-1": errUpstream,
		"mem:i-2": fmt.Errorf("MemoryUtilization for i-2: %w", fetcher.ErrNoData),
	}}
	p := newPoller(f, []Instance{
		{ID: "i-1", LoadBalancerID: "lb-1"},
		{ID: "i-2", LoadBalancerID: "lb-2"},
	}, nil)

	r := p.Cycle(context.Background())

	assert.Equal(t, 14, r.Operations)
	assert.Equal(t, 2, r.Failures)
	assert.Equal(t, 1, r.NoData)
	assert.Contains(t, f.calls, "cpu:i-2")
	assert.Contains(t, f.calls, "bs:lb-2")
}

func TestCycle_AppliesTimeout(t *testing.T) {
	f := &fakes{}
	p := newPoller(f, nil, []Database{{ID: "db-1"}}, WithTimeout(time.Second))
	p.Cycle(context.Background())
	assert.Equal(t, []bool{true, true}, f.deadlines)

	f = &fakes{}
	p = newPoller(f, nil, []Database{{ID: "db-1"}})
	p.Cycle(context.Background())
	assert.Equal(t, []bool{false, false}, f.deadlines)
}

func TestCycle_StopsWhenCancelled(t *testing.T) {
	f := &fakes{}
	p := newPoller(f, fourInstances(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := p.Cycle(ctx)

	assert.Zero(t, r.Operations)
	assert.Empty(t, f.calls)
}

func TestRun_SleepsBetweenCycles(t *testing.T) {
	f := &fakes{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sleeps []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		if len(sleeps) == 3 {
			cancel()
		}
		return ctx.Err()
	}

	p := newPoller(f, fourInstances(), []Database{{ID: "db-1"}}, WithSleep(sleep))
	require.NoError(t, p.Run(ctx))

	assert.Equal(t, []time.Duration{DefaultInterval, DefaultInterval, DefaultInterval}, sleeps)
	assert.Equal(t, 10*time.Second, sleeps[0])
	assert.Len(t, f.calls, 3*30)
}

func TestRun_CustomInterval(t *testing.T) {
	var got time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		got = d
		return context.Canceled
	}

	p := newPoller(&fakes{}, nil, nil, WithInterval(time.Minute), WithSleep(sleep))
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, time.Minute, got)
}

func TestCycle_Instruments(t *testing.T) {
	f := &fakes{fail: map[string]error{"bs:lb-1": errUpstream}}
	in := NewInstruments()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	p := newPoller(f, []Instance{{ID: "i-1", LoadBalancerID: "lb-1"}}, nil,
		WithInstruments(in), WithClock(clock))

	r := p.Cycle(context.Background())
	p.Cycle(context.Background())

	assert.Equal(t, time.Second, r.Duration)
	assert.Equal(t, 2.0, testutil.ToFloat64(in.cyclesTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(in.failuresTotal.WithLabelValues("backend_set_health")))
	assert.Equal(t, 1, testutil.CollectAndCount(in.cycleDuration))
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
