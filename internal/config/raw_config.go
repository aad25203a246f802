package config

// RawConfig represents unparsed YAML structure
type RawConfig struct {
	OCI       RawOCIConfig       `yaml:"oci"`
	Resources RawResourcesConfig `yaml:"resources"`
	Settings  RawSettingsConfig  `yaml:"settings"`
	Export    RawExportConfig    `yaml:"export"`
}

// RawOCIConfig holds provider credentials
type RawOCIConfig struct {
	ConfigFile    string `yaml:"config_file,omitempty"`
	Profile       string `yaml:"profile,omitempty"`
	Tenancy       string `yaml:"tenancy,omitempty"`
	User          string `yaml:"user,omitempty"`
	Fingerprint   string `yaml:"fingerprint,omitempty"`
	KeyFile       string `yaml:"key_file,omitempty"`
	Passphrase    string `yaml:"passphrase,omitempty"`
	Region        string `yaml:"region,omitempty"`
	CompartmentID string `yaml:"compartment_id,omitempty"`
}

// RawResourcesConfig lists the monitored resources
type RawResourcesConfig struct {
	Instances []RawInstanceConfig `yaml:"instances"`
	Databases []RawDatabaseConfig `yaml:"databases"`
}

// RawInstanceConfig pairs an instance with its load balancer
type RawInstanceConfig struct {
	InstanceID     string `yaml:"instance_id"`
	LoadBalancerID string `yaml:"load_balancer_id"`
}

// RawDatabaseConfig identifies a database
type RawDatabaseConfig struct {
	DBID string `yaml:"db_id"`
}
