package metric

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry owns the labeled gauges and the Prometheus registry they live in.
type Registry struct {
	registry *prometheus.Registry
	gauges   map[Gauge]*prometheus.GaugeVec
}

// New creates a registry with every gauge family of Descriptors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	gauges := make(map[Gauge]*prometheus.GaugeVec, len(Descriptors))

	for _, d := range Descriptors {
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: string(d.Name),
			Help: d.Description,
		}, d.Labels)
		reg.MustRegister(vec)
		gauges[d.Name] = vec

		slog.Debug("registered gauge", "name", d.Name, "labels", d.Labels)
	}

	return &Registry{
		registry: reg,
		gauges:   gauges,
	}
}

// Set overwrites the value of gauge g for the given label values.
func (r *Registry) Set(g Gauge, value float64, labelValues ...string) error {
	vec, ok := r.gauges[g]
	if !ok {
		return fmt.Errorf("unknown gauge %q", g)
	}

	gauge, err := vec.GetMetricWithLabelValues(labelValues...)
	if err != nil {
		return fmt.Errorf("gauge %q: %w", g, err)
	}

	gauge.Set(value)
	return nil
}

// MustRegister adds additional collectors, such as internal metrics.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
