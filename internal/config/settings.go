package config

import (
	"fmt"
	"time"
)

const (
	DefaultInterval     = 10 * time.Second
	DefaultFetchTimeout = 30 * time.Second
	DefaultDiskPath     = "/"

	// DefaultMonitorInterval is how often process usage is sampled.
	DefaultMonitorInterval = 5 * time.Second
)

// SettingsConfig holds general application settings.
type SettingsConfig struct {
	Interval        time.Duration
	FetchTimeout    time.Duration
	Lookback        time.Duration
	DiskPath        string
	InternalMetrics InternalMetricsConfig
}

// InternalMetricsConfig controls ocimon's self-monitoring metrics.
type InternalMetricsConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Validate applies defaults and validates settings configuration.
func (s *SettingsConfig) Validate() error {
	// Apply defaults
	if s.Interval == 0 {
		s.Interval = DefaultInterval
	}
	if s.DiskPath == "" {
		s.DiskPath = DefaultDiskPath
	}
	if s.InternalMetrics.Interval == 0 {
		s.InternalMetrics.Interval = DefaultMonitorInterval
	}

	if s.Interval < 0 {
		return fmt.Errorf("interval must be positive: %s", s.Interval)
	}
	if s.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout cannot be negative: %s", s.FetchTimeout)
	}
	if s.InternalMetrics.Interval < 0 {
		return fmt.Errorf("internal_metrics interval must be positive: %s", s.InternalMetrics.Interval)
	}
	if s.Lookback < 0 {
		return fmt.Errorf("lookback cannot be negative: %s", s.Lookback)
	}

	return nil
}
