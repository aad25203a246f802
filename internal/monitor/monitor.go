// Package monitor samples the exporter's own process and republishes the
// readings as gauges.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/process"
)

// Process metric names.
const (
	cpuPercentName  = "ocimon_process_cpu_percent"
	residentMemName = "ocimon_process_resident_memory_bytes"
	goroutinesName  = "ocimon_process_goroutines"
)

// Monitor tracks process resource usage and saturation.
type Monitor struct {
	interval time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
	proc     *process.Process

	cpuPercent  prometheus.Gauge
	residentMem prometheus.Gauge
	goroutines  prometheus.Gauge
}

// New creates a monitor for the current process sampling every interval.
func New(interval time.Duration, logger *slog.Logger) (*Monitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("monitor interval must be positive, got %s", interval)
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process handle: %w", err)
	}

	return &Monitor{
		interval: interval,
		logger:   logger,
		proc:     proc,
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: cpuPercentName,
			Help: "CPU usage of the exporter process in percent of one core",
		}),
		residentMem: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: residentMemName,
			Help: "Resident set size of the exporter process in bytes",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: goroutinesName,
			Help: "Number of goroutines in the exporter process",
		}),
	}, nil
}

// Collectors returns the process gauges for registration.
func (m *Monitor) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.cpuPercent, m.residentMem, m.goroutines}
}

// Run starts the sampling loop in a background goroutine.
// The loop stops when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.wg.Go(func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		// Immediate first collection
		m.collect(ctx)

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("monitor shutdown complete")
				return
			case <-ticker.C:
				m.collect(ctx)
			}
		}
	})
}

// Wait blocks until the monitor goroutine exits.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// collect reads the current process usage, updates the gauges and logs it.
func (m *Monitor) collect(ctx context.Context) {
	processCPU, err := m.proc.CPUPercentWithContext(ctx)
	if err != nil {
		m.logger.Warn("failed to get CPU percent", "error", err)
		processCPU = 0
	}

	var rss uint64
	if mi, err := m.proc.MemoryInfoWithContext(ctx); err != nil {
		m.logger.Warn("failed to get memory info", "error", err)
	} else {
		rss = mi.RSS
	}

	goroutines := runtime.NumGoroutine()

	m.cpuPercent.Set(processCPU)
	m.residentMem.Set(float64(rss))
	m.goroutines.Set(float64(goroutines))

	cores := runtime.GOMAXPROCS(-1)
	utilization := processCPU / float64(cores*100)
	saturation := saturationLevel(utilization)

	m.logger.LogAttrs(
		ctx,
		slog.LevelDebug,
		"resource",
		slog.String("cpu", fmt.Sprintf("%.4f%%", processCPU)),
		slog.String("util", fmt.Sprintf("%.4f%%", utilization*100)),
		slog.Int("cores", cores),
		slog.Int("gor", goroutines),
		slog.String("rss", fmt.Sprintf("%.2fMB", float64(rss)/(1024*1024))),
		slog.String("sat", saturation),
	)

	if saturation == "saturated" {
		m.logger.Warn(
			"cpu saturation detected",
			"cpu", processCPU,
			"util_pct", utilization*100,
			"action", "raise settings.interval or increase GOMAXPROCS",
		)
	}
}

// saturationLevel buckets a utilization fraction of all usable cores.
func saturationLevel(utilization float64) string {
	switch {
	case utilization > 0.95:
		return "saturated"
	case utilization > 0.80:
		return "high"
	default:
		return "normal"
	}
}
