// Package poller runs the sequential polling cycle over the static
// resource list.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/neox5/ocimon/internal/fetcher"
)

// DefaultInterval is the pause between the end of one cycle and the next.
const DefaultInterval = 10 * time.Second

// Instance pairs a compute instance with its load balancer.
type Instance struct {
	ID             string
	LoadBalancerID string
}

// Database identifies a monitored database.
type Database struct {
	ID string
}

// MetricsFetcher publishes provider time series.
type MetricsFetcher interface {
	InstanceCPU(ctx context.Context, instanceID string) error
	InstanceMemory(ctx context.Context, instanceID string) error
	DatabaseCPU(ctx context.Context, dbID string) error
	DatabaseStorage(ctx context.Context, dbID string) error
}

// TopologyFetcher publishes load balancer state.
type TopologyFetcher interface {
	LoadBalancerStatus(ctx context.Context, loadBalancerID string) error
	BackendSetHealth(ctx context.Context, loadBalancerID string) error
}

// HostCollector publishes local host counters.
type HostCollector interface {
	MemoryUsage(ctx context.Context, instanceID string) error
	DiskUsage(ctx context.Context, instanceID string) error
	NetworkIO(ctx context.Context, instanceID string) error
}

// Report summarizes one cycle.
type Report struct {
	Operations int
	Failures   int
	NoData     int
	Duration   time.Duration
}

// Poller invokes every fetch operation in a fixed order, then sleeps.
type Poller struct {
	instances []Instance
	databases []Database

	metrics  MetricsFetcher
	topology TopologyFetcher
	host     HostCollector

	interval    time.Duration
	timeout     time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	now         func() time.Time
	instruments *Instruments
	logger      *slog.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the pause between cycles.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithTimeout bounds every single fetch operation. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) { p.timeout = d }
}

// WithSleep replaces the inter-cycle sleep.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Poller) { p.sleep = sleep }
}

// WithClock replaces time.Now for cycle timing.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// WithInstruments records cycle statistics.
func WithInstruments(in *Instruments) Option {
	return func(p *Poller) { p.instruments = in }
}

// New creates a poller over a static resource list.
func New(
	instances []Instance,
	databases []Database,
	metrics MetricsFetcher,
	topology TopologyFetcher,
	host HostCollector,
	logger *slog.Logger,
	opts ...Option,
) *Poller {
	p := &Poller{
		instances: instances,
		databases: databases,
		metrics:   metrics,
		topology:  topology,
		host:      host,
		interval:  DefaultInterval,
		sleep:     sleepContext,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. Cycles never overlap: the interval is
// measured from the end of one cycle to the start of the next.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("starting poller",
		"instances", len(p.instances),
		"databases", len(p.databases),
		"interval", p.interval)

	for {
		r := p.Cycle(ctx)
		p.logger.Info("poll cycle complete",
			"operations", r.Operations,
			"failures", r.Failures,
			"no_data", r.NoData,
			"duration", r.Duration)

		if err := p.sleep(ctx, p.interval); err != nil {
			p.logger.Info("poller shutdown complete")
			return nil
		}
	}
}

// Cycle runs every operation once, in order, and reports the outcome.
// A failing operation never prevents the following ones from running.
func (p *Poller) Cycle(ctx context.Context) Report {
	start := p.now()
	var r Report

	for _, inst := range p.instances {
		id, lb := inst.ID, inst.LoadBalancerID
		p.run(ctx, &r, "instance_cpu", id, p.metrics.InstanceCPU)
		p.run(ctx, &r, "instance_memory", id, p.metrics.InstanceMemory)
		p.run(ctx, &r, "host_memory", id, p.host.MemoryUsage)
		p.run(ctx, &r, "host_disk", id, p.host.DiskUsage)
		p.run(ctx, &r, "host_network", id, p.host.NetworkIO)
		p.run(ctx, &r, "load_balancer_status", lb, p.topology.LoadBalancerStatus)
		p.run(ctx, &r, "backend_set_health", lb, p.topology.BackendSetHealth)
	}

	for _, db := range p.databases {
		p.run(ctx, &r, "database_cpu", db.ID, p.metrics.DatabaseCPU)
		p.run(ctx, &r, "database_storage", db.ID, p.metrics.DatabaseStorage)
	}

	r.Duration = p.now().Sub(start)
	if p.instruments != nil {
		p.instruments.observeCycle(r.Duration)
	}
	return r
}

// run executes one operation and logs its outcome.
func (p *Poller) run(
	ctx context.Context,
	r *Report,
	op string,
	resource string,
	fn func(ctx context.Context, id string) error,
) {
	if ctx.Err() != nil {
		return
	}

	opCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	r.Operations++
	err := fn(opCtx, resource)
	switch {
	case err == nil:
	case errors.Is(err, fetcher.ErrNoData):
		r.NoData++
		p.logger.Info("no data", "operation", op, "resource", resource, "reason", err)
	default:
		r.Failures++
		if p.instruments != nil {
			p.instruments.observeFailure(op)
		}
		p.logger.Warn("fetch failed", "operation", op, "resource", resource, "error", err)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
