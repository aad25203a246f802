package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOCIProfile is the profile read from the OCI config file.
const DefaultOCIProfile = "DEFAULT"

// Config holds the complete application configuration.
type Config struct {
	OCI       OCIConfig
	Resources ResourcesConfig
	Settings  SettingsConfig
	Export    ExportConfig
}

// OCIConfig holds provider credentials.
// Inline credentials are used when KeyFile is set, otherwise Profile is
// read from ConfigFile (or the SDK default location when empty).
type OCIConfig struct {
	ConfigFile    string
	Profile       string
	Tenancy       string
	User          string
	Fingerprint   string
	KeyFile       string
	Passphrase    string
	Region        string
	CompartmentID string
}

// Inline reports whether inline credentials are configured.
func (c *OCIConfig) Inline() bool {
	return c.KeyFile != ""
}

// Validate applies defaults and validates credentials.
func (c *OCIConfig) Validate() error {
	if c.Profile == "" {
		c.Profile = DefaultOCIProfile
	}

	c.ConfigFile = expandHome(c.ConfigFile)
	c.KeyFile = expandHome(c.KeyFile)

	if !c.Inline() {
		return nil
	}

	var missing []string
	if c.Tenancy == "" {
		missing = append(missing, "tenancy")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.Fingerprint == "" {
		missing = append(missing, "fingerprint")
	}
	if c.Region == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return fmt.Errorf("oci: key_file is set but %s missing", strings.Join(missing, ", "))
	}

	if c.CompartmentID == "" {
		c.CompartmentID = c.Tenancy
	}
	return nil
}

// ResourcesConfig lists the monitored resources.
type ResourcesConfig struct {
	Instances []InstanceConfig
	Databases []DatabaseConfig
}

// InstanceConfig pairs a compute instance with its load balancer.
type InstanceConfig struct {
	InstanceID     string
	LoadBalancerID string
}

// DatabaseConfig identifies a database.
type DatabaseConfig struct {
	DBID string
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
