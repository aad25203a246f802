// Package provider defines the cloud APIs the poller consumes and an OCI
// implementation of them.
package provider

import (
	"context"
	"time"
)

// DataPoint is one aggregated time-series bucket.
type DataPoint struct {
	Timestamp time.Time
	Value     float64
}

// LoadBalancer holds the fields read from a load balancer lookup.
type LoadBalancer struct {
	ID             string
	LifecycleState string
}

// BackendSet identifies a backend set of a load balancer.
type BackendSet struct {
	Name string
}

// BackendSetHealth holds the aggregate health of one backend set.
type BackendSetHealth struct {
	Status string
}

// Monitoring queries aggregated time-series data.
type Monitoring interface {
	// QueryTimeSeries returns the aggregated points of the first series
	// matching query, in the order the provider returned them.
	QueryTimeSeries(ctx context.Context, compartmentID string, q Query) ([]DataPoint, error)
}

// LoadBalancers reads load balancer topology and health.
type LoadBalancers interface {
	GetLoadBalancer(ctx context.Context, id string) (LoadBalancer, error)
	ListBackendSets(ctx context.Context, id string) ([]BackendSet, error)
	GetBackendSetHealth(ctx context.Context, id, backendSet string) (BackendSetHealth, error)
}
