package config

import "time"

// RawSettingsConfig holds general application settings
type RawSettingsConfig struct {
	Interval        time.Duration            `yaml:"interval,omitempty"`
	FetchTimeout    *time.Duration           `yaml:"fetch_timeout,omitempty"`
	Lookback        time.Duration            `yaml:"lookback,omitempty"`
	DiskPath        string                   `yaml:"disk_path,omitempty"`
	InternalMetrics RawInternalMetricsConfig `yaml:"internal_metrics"`
}

// RawInternalMetricsConfig controls ocimon's self-monitoring metrics
type RawInternalMetricsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval,omitempty"`
}
