package config

import (
	"maps"
)

// Resolve converts raw config into final config, applying defaults
func Resolve(raw *RawConfig) (*Config, error) {
	// Phase 1: Credentials
	oci := OCIConfig{
		ConfigFile:    raw.OCI.ConfigFile,
		Profile:       raw.OCI.Profile,
		Tenancy:       raw.OCI.Tenancy,
		User:          raw.OCI.User,
		Fingerprint:   raw.OCI.Fingerprint,
		KeyFile:       raw.OCI.KeyFile,
		Passphrase:    raw.OCI.Passphrase,
		Region:        raw.OCI.Region,
		CompartmentID: raw.OCI.CompartmentID,
	}
	if err := oci.Validate(); err != nil {
		return nil, err
	}

	// Phase 2: Resources
	resources := resolveResources(&raw.Resources)

	// Phase 3: Settings
	settings, err := resolveSettings(&raw.Settings)
	if err != nil {
		return nil, err
	}

	// Phase 4: Export
	export, err := resolveExport(&raw.Export)
	if err != nil {
		return nil, err
	}

	return &Config{
		OCI:       oci,
		Resources: resources,
		Settings:  settings,
		Export:    export,
	}, nil
}

// resolveResources copies the static resource lists in file order
func resolveResources(raw *RawResourcesConfig) ResourcesConfig {
	result := ResourcesConfig{
		Instances: make([]InstanceConfig, 0, len(raw.Instances)),
		Databases: make([]DatabaseConfig, 0, len(raw.Databases)),
	}
	for _, inst := range raw.Instances {
		result.Instances = append(result.Instances, InstanceConfig{
			InstanceID:     inst.InstanceID,
			LoadBalancerID: inst.LoadBalancerID,
		})
	}
	for _, db := range raw.Databases {
		result.Databases = append(result.Databases, DatabaseConfig{DBID: db.DBID})
	}
	return result
}

// resolveSettings converts raw settings config to resolved settings config
func resolveSettings(raw *RawSettingsConfig) (SettingsConfig, error) {
	result := SettingsConfig{
		Interval:     raw.Interval,
		FetchTimeout: DefaultFetchTimeout,
		Lookback:     raw.Lookback,
		DiskPath:     raw.DiskPath,
		InternalMetrics: InternalMetricsConfig{
			Enabled:  raw.InternalMetrics.Enabled,
			Interval: raw.InternalMetrics.Interval,
		},
	}
	// An explicit 0s disables the per-fetch timeout
	if raw.FetchTimeout != nil {
		result.FetchTimeout = *raw.FetchTimeout
	}

	// Validate converted config
	if err := result.Validate(); err != nil {
		return SettingsConfig{}, err
	}

	return result, nil
}

// resolveExport converts raw export config to resolved export config
func resolveExport(raw *RawExportConfig) (ExportConfig, error) {
	result := ExportConfig{}

	// Convert Prometheus config if present
	if raw.Prometheus != nil {
		result.Prometheus = &PrometheusExportConfig{
			Enabled: raw.Prometheus.Enabled,
			Port:    raw.Prometheus.Port,
			Path:    raw.Prometheus.Path,
		}
	}

	// Convert OTEL config if present
	if raw.OTEL != nil {
		insecure := true
		if raw.OTEL.Insecure != nil {
			insecure = *raw.OTEL.Insecure
		}
		result.OTEL = &OTELExportConfig{
			Enabled:   raw.OTEL.Enabled,
			Transport: raw.OTEL.Transport,
			Host:      raw.OTEL.Host,
			Port:      raw.OTEL.Port,
			Insecure:  insecure,
			Interval:  raw.OTEL.Interval.Push,
			Resource:  copyStringMap(raw.OTEL.Resource),
			Headers:   copyStringMap(raw.OTEL.Headers),
		}
	}

	// Validate converted config
	if err := result.Validate(); err != nil {
		return ExportConfig{}, err
	}

	return result, nil
}

// copyStringMap creates a copy of a string map (handles nil)
func copyStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	maps.Copy(dst, src)
	return dst
}
