// Package status maps provider state strings to stable numeric codes.
package status

// Unknown is returned for any state string outside the fixed tables.
const Unknown = 0

var lifecycleCodes = map[string]int{
	"CREATING": 1,
	"ACTIVE":   2,
	"UPDATING": 3,
	"DELETING": 4,
	"DELETED":  5,
	"FAILED":   6,
}

var healthCodes = map[string]int{
	"OK":       1,
	"WARNING":  2,
	"CRITICAL": 3,
	"UNKNOWN":  4,
}

// LifecycleCode maps a load balancer lifecycle state to 1..6, or Unknown.
func LifecycleCode(state string) int {
	if code, ok := lifecycleCodes[state]; ok {
		return code
	}
	return Unknown
}

// HealthCode maps a backend set health status to 1..4, or Unknown.
func HealthCode(health string) int {
	if code, ok := healthCodes[health]; ok {
		return code
	}
	return Unknown
}
