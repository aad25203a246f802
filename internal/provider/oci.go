package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/loadbalancer"
	"github.com/oracle/oci-go-sdk/v65/monitoring"
)

// Credentials selects how the OCI SDK authenticates.
// When KeyFile is set the inline fields are used, otherwise the profile
// is read from ConfigFile.
type Credentials struct {
	ConfigFile  string
	Profile     string
	Tenancy     string
	User        string
	Fingerprint string
	KeyFile     string
	Passphrase  string
	Region      string
}

// OCI implements Monitoring and LoadBalancers on the OCI Go SDK.
type OCI struct {
	monitoring   monitoring.MonitoringClient
	loadBalancer loadbalancer.LoadBalancerClient
	tenancy      string
}

// NewOCI builds SDK clients from credentials.
func NewOCI(creds Credentials) (*OCI, error) {
	cp, err := configurationProvider(creds)
	if err != nil {
		return nil, err
	}
	return newOCI(cp, creds.Region, "")
}

// newOCI builds SDK clients from a configuration provider. A non-empty
// host replaces the regional endpoint of both clients.
func newOCI(cp common.ConfigurationProvider, region, host string) (*OCI, error) {
	if _, err := common.IsConfigurationProviderValid(cp); err != nil {
		return nil, fmt.Errorf("invalid oci credentials: %w", err)
	}

	tenancy, err := cp.TenancyOCID()
	if err != nil {
		return nil, fmt.Errorf("failed to read tenancy: %w", err)
	}

	mon, err := monitoring.NewMonitoringClientWithConfigurationProvider(cp)
	if err != nil {
		return nil, fmt.Errorf("failed to create monitoring client: %w", err)
	}

	lb, err := loadbalancer.NewLoadBalancerClientWithConfigurationProvider(cp)
	if err != nil {
		return nil, fmt.Errorf("failed to create load balancer client: %w", err)
	}

	if region != "" {
		mon.SetRegion(region)
		lb.SetRegion(region)
	}
	if host != "" {
		mon.Host = host
		lb.Host = host
	}

	return &OCI{
		monitoring:   mon,
		loadBalancer: lb,
		tenancy:      tenancy,
	}, nil
}

func configurationProvider(creds Credentials) (common.ConfigurationProvider, error) {
	if creds.KeyFile == "" {
		if creds.ConfigFile == "" {
			return common.DefaultConfigProvider(), nil
		}
		return common.CustomProfileConfigProvider(creds.ConfigFile, creds.Profile), nil
	}

	key, err := os.ReadFile(creds.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var passphrase *string
	if creds.Passphrase != "" {
		passphrase = common.String(creds.Passphrase)
	}

	return common.NewRawConfigurationProvider(
		creds.Tenancy,
		creds.User,
		creds.Region,
		creds.Fingerprint,
		string(key),
		passphrase,
	), nil
}

// Tenancy returns the tenancy OCID of the configured credentials.
func (o *OCI) Tenancy() string {
	return o.tenancy
}

// QueryTimeSeries runs SummarizeMetricsData and returns the first series.
func (o *OCI) QueryTimeSeries(ctx context.Context, compartmentID string, q Query) ([]DataPoint, error) {
	details := monitoring.SummarizeMetricsDataDetails{
		Namespace: common.String(q.Namespace),
		Query:     common.String(q.String()),
	}
	if !q.Start.IsZero() {
		details.StartTime = &common.SDKTime{Time: q.Start}
	}
	if !q.End.IsZero() {
		details.EndTime = &common.SDKTime{Time: q.End}
	}

	resp, err := o.monitoring.SummarizeMetricsData(ctx, monitoring.SummarizeMetricsDataRequest{
		CompartmentId:               common.String(compartmentID),
		SummarizeMetricsDataDetails: details,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}

	raw := resp.Items[0].AggregatedDatapoints
	points := make([]DataPoint, 0, len(raw))
	for _, dp := range raw {
		if dp.Value == nil {
			continue
		}
		p := DataPoint{Value: *dp.Value}
		if dp.Timestamp != nil {
			p.Timestamp = dp.Timestamp.Time
		}
		points = append(points, p)
	}

	return points, nil
}

// GetLoadBalancer returns the load balancer lifecycle state.
func (o *OCI) GetLoadBalancer(ctx context.Context, id string) (LoadBalancer, error) {
	resp, err := o.loadBalancer.GetLoadBalancer(ctx, loadbalancer.GetLoadBalancerRequest{
		LoadBalancerId: common.String(id),
	})
	if err != nil {
		return LoadBalancer{}, err
	}

	return LoadBalancer{
		ID:             id,
		LifecycleState: string(resp.LoadBalancer.LifecycleState),
	}, nil
}

// ListBackendSets returns every backend set of the load balancer.
func (o *OCI) ListBackendSets(ctx context.Context, id string) ([]BackendSet, error) {
	resp, err := o.loadBalancer.ListBackendSets(ctx, loadbalancer.ListBackendSetsRequest{
		LoadBalancerId: common.String(id),
	})
	if err != nil {
		return nil, err
	}

	sets := make([]BackendSet, 0, len(resp.Items))
	for _, bs := range resp.Items {
		if bs.Name == nil {
			continue
		}
		sets = append(sets, BackendSet{Name: *bs.Name})
	}

	return sets, nil
}

// GetBackendSetHealth returns the aggregate health status of one backend set.
func (o *OCI) GetBackendSetHealth(ctx context.Context, id, backendSet string) (BackendSetHealth, error) {
	resp, err := o.loadBalancer.GetBackendSetHealth(ctx, loadbalancer.GetBackendSetHealthRequest{
		LoadBalancerId: common.String(id),
		BackendSetName: common.String(backendSet),
	})
	if err != nil {
		return BackendSetHealth{}, err
	}

	return BackendSetHealth{Status: string(resp.BackendSetHealth.Status)}, nil
}
