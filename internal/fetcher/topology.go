package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neox5/ocimon/internal/metric"
	"github.com/neox5/ocimon/internal/provider"
	"github.com/neox5/ocimon/internal/status"
)

// Topology publishes load balancer lifecycle state and backend set health.
type Topology struct {
	client provider.LoadBalancers
	gauges Recorder
	logger *slog.Logger
}

// NewTopology creates a load balancer fetcher.
func NewTopology(client provider.LoadBalancers, gauges Recorder, logger *slog.Logger) *Topology {
	return &Topology{
		client: client,
		gauges: gauges,
		logger: logger,
	}
}

// LoadBalancerStatus publishes the lifecycle code of one load balancer.
// Unrecognized states publish status.Unknown.
func (t *Topology) LoadBalancerStatus(ctx context.Context, loadBalancerID string) error {
	lb, err := t.client.GetLoadBalancer(ctx, loadBalancerID)
	if err != nil {
		return fmt.Errorf("get load balancer %s: %w", loadBalancerID, err)
	}

	code := status.LifecycleCode(lb.LifecycleState)
	if err := t.gauges.Set(metric.LoadBalancerHealth, float64(code), loadBalancerID); err != nil {
		return err
	}

	t.logger.Debug("published load balancer status",
		"load_balancer", loadBalancerID,
		"state", lb.LifecycleState,
		"code", code)
	return nil
}

// BackendSetHealth publishes the health code of every backend set.
// A failing health lookup does not stop the remaining sets; all failures
// are returned joined. A failing list call publishes nothing.
func (t *Topology) BackendSetHealth(ctx context.Context, loadBalancerID string) error {
	sets, err := t.client.ListBackendSets(ctx, loadBalancerID)
	if err != nil {
		return fmt.Errorf("list backend sets of %s: %w", loadBalancerID, err)
	}

	var errs []error
	for _, bs := range sets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		health, err := t.client.GetBackendSetHealth(ctx, loadBalancerID, bs.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("backend set %s health of %s: %w", bs.Name, loadBalancerID, err))
			continue
		}

		code := status.HealthCode(health.Status)
		if err := t.gauges.Set(metric.BackendSetHealth, float64(code), loadBalancerID, bs.Name); err != nil {
			errs = append(errs, err)
			continue
		}

		t.logger.Debug("published backend set health",
			"load_balancer", loadBalancerID,
			"backend_set", bs.Name,
			"status", health.Status,
			"code", code)
	}

	return errors.Join(errs...)
}
