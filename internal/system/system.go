// Package system samples host counters of the machine running the exporter.
package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// NetCounters holds cumulative byte counters across all interfaces.
type NetCounters struct {
	BytesRecv uint64
	BytesSent uint64
}

// Stats is the local host view used by the poller.
type Stats interface {
	MemoryPercent(ctx context.Context) (float64, error)
	DiskPercent(ctx context.Context) (float64, error)
	NetIO(ctx context.Context) (NetCounters, error)
}

// Host reads Stats from the local OS via gopsutil.
type Host struct {
	diskPath string
}

// NewHost creates a host reader measuring disk usage at diskPath.
func NewHost(diskPath string) *Host {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Host{diskPath: diskPath}
}

// MemoryPercent returns used virtual memory in percent.
func (h *Host) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read virtual memory: %w", err)
	}
	return vm.UsedPercent, nil
}

// DiskPercent returns used space of the configured filesystem in percent.
func (h *Host) DiskPercent(ctx context.Context) (float64, error) {
	usage, err := disk.UsageWithContext(ctx, h.diskPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read disk usage of %s: %w", h.diskPath, err)
	}
	return usage.UsedPercent, nil
}

// NetIO returns cumulative counters summed over all interfaces.
func (h *Host) NetIO(ctx context.Context) (NetCounters, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetCounters{}, fmt.Errorf("failed to read network counters: %w", err)
	}
	if len(counters) == 0 {
		return NetCounters{}, fmt.Errorf("no network counters reported")
	}

	var nc NetCounters
	for _, c := range counters {
		nc.BytesRecv += c.BytesRecv
		nc.BytesSent += c.BytesSent
	}
	return nc, nil
}
