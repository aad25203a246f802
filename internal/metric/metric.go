package metric

// Gauge names a published gauge family.
type Gauge string

const (
	InstanceCPU        Gauge = "oci_instance_cpu_utilization"
	InstanceMemory     Gauge = "oci_instance_memory_utilization"
	HostMemoryUsage    Gauge = "instance_memory_usage"
	HostDiskUsage      Gauge = "instance_disk_usage"
	HostNetworkIn      Gauge = "instance_network_in"
	HostNetworkOut     Gauge = "instance_network_out"
	LoadBalancerHealth Gauge = "oci_load_balancer_health"
	BackendSetHealth   Gauge = "oci_backend_set_health"
	DatabaseCPU        Gauge = "oci_db_cpu_utilization"
	DatabaseMemory     Gauge = "oci_db_memory_utilization"
)

// Label names.
const (
	LabelInstanceID     = "instance_id"
	LabelLoadBalancerID = "load_balancer_id"
	LabelBackendSetName = "backend_set_name"
	LabelDatabaseID     = "db_id"
)

// Descriptor holds the metadata of a gauge family.
type Descriptor struct {
	Name        Gauge
	Description string
	Labels      []string
}

// Descriptors lists every gauge family in registration order.
var Descriptors = []Descriptor{
	{InstanceCPU, "CPU Utilization of OCI instance", []string{LabelInstanceID}},
	{InstanceMemory, "Memory Utilization of OCI instance", []string{LabelInstanceID}},
	{HostMemoryUsage, "Memory Usage of the instance", []string{LabelInstanceID}},
	{HostDiskUsage, "Disk Usage of the instance", []string{LabelInstanceID}},
	{HostNetworkIn, "Network Inbound Traffic of the instance", []string{LabelInstanceID}},
	{HostNetworkOut, "Network Outbound Traffic of the instance", []string{LabelInstanceID}},
	{LoadBalancerHealth, "Health status of OCI Load Balancer", []string{LabelLoadBalancerID}},
	{BackendSetHealth, "Health status of OCI Load Balancer Backend Set", []string{LabelLoadBalancerID, LabelBackendSetName}},
	{DatabaseCPU, "CPU Utilization of OCI Database", []string{LabelDatabaseID}},
	{DatabaseMemory, "Memory Utilization of OCI Database", []string{LabelDatabaseID}},
}
