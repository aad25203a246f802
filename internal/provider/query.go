package provider

import (
	"fmt"
	"time"
)

// Metric namespaces.
const (
	NamespaceComputeAgent = "oci_computeagent"
	NamespaceDatabase     = "oci_database"
)

// Dimension keys used to select a resource in a query.
const (
	DimensionResourceID = "resourceId"
	DimensionDatabaseID = "resourceId_database"
)

// Query describes one time-series lookup in monitoring query language.
type Query struct {
	Namespace   string
	Metric      string
	Window      time.Duration
	Dimension   string
	ResourceID  string
	Aggregation string

	// Start and End bound the query. Zero values leave the provider default.
	Start time.Time
	End   time.Time
}

// String renders the query in MQL, e.g.
// CpuUtilization[1m]{resourceId="ocid1..."}.max()
func (q Query) String() string {
	agg := q.Aggregation
	if agg == "" {
		agg = "max"
	}
	return fmt.Sprintf("%s[%s]{%s=%q}.%s()",
		q.Metric, formatWindow(q.Window), q.Dimension, q.ResourceID, agg)
}

// formatWindow renders a duration using the largest whole MQL unit.
func formatWindow(d time.Duration) string {
	switch {
	case d <= 0:
		return "1m"
	case d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d%time.Hour == 0 && d >= 2*time.Hour:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return fmt.Sprintf("%ds", d/time.Second)
	}
}
