package config

import (
	"fmt"
)

// Validate performs syntactic validation on raw config
func Validate(raw *RawConfig) error {
	return validateRawSyntax(raw)
}

// validateRawSyntax performs basic syntactic validation on raw config
func validateRawSyntax(raw *RawConfig) error {
	res := raw.Resources

	if len(res.Instances) == 0 && len(res.Databases) == 0 {
		return fmt.Errorf("at least one instance or database must be defined")
	}

	for i, inst := range res.Instances {
		if inst.InstanceID == "" {
			return fmt.Errorf("instance at index %d: instance_id cannot be empty", i)
		}
		if inst.LoadBalancerID == "" {
			return fmt.Errorf("instance %q: load_balancer_id cannot be empty", inst.InstanceID)
		}
	}

	for i, db := range res.Databases {
		if db.DBID == "" {
			return fmt.Errorf("database at index %d: db_id cannot be empty", i)
		}
	}

	return nil
}
