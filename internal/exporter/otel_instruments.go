package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neox5/ocimon/internal/metric"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// sample is one gauge series read from the Prometheus registry.
type sample struct {
	name       string
	value      float64
	attributes []attribute.KeyValue
}

// registerOTELInstruments creates one observable gauge per gauge family.
func registerOTELInstruments(e *OTELExporter) error {
	e.gauges = make(map[string]otelmetric.Float64ObservableGauge, len(metric.Descriptors))
	observables := make([]otelmetric.Observable, 0, len(metric.Descriptors))

	for _, d := range metric.Descriptors {
		name := string(d.Name)
		gauge, err := e.meter.Float64ObservableGauge(
			name,
			otelmetric.WithDescription(d.Description),
		)
		if err != nil {
			return fmt.Errorf("failed to create gauge %q: %w", name, err)
		}

		e.gauges[name] = gauge
		observables = append(observables, gauge)

		slog.Debug("registered otel metric", "name", name, "attributes", d.Labels)
	}

	return registerOTELCallback(e, observables)
}

// registerOTELCallback observes the current registry state on every push.
func registerOTELCallback(e *OTELExporter, observables []otelmetric.Observable) error {
	_, err := e.meter.RegisterCallback(
		func(ctx context.Context, observer otelmetric.Observer) error {
			families, err := e.gatherer.Gather()
			if err != nil {
				return fmt.Errorf("failed to gather metrics: %w", err)
			}

			samples := gaugeSamples(families)
			slog.Debug("otel push", "series", len(samples))

			for _, s := range samples {
				gauge, ok := e.gauges[s.name]
				if !ok {
					continue
				}
				observer.ObserveFloat64(gauge, s.value, otelmetric.WithAttributes(s.attributes...))
			}
			return nil
		},
		observables...,
	)
	if err != nil {
		return fmt.Errorf("failed to register callback: %w", err)
	}

	return nil
}

// gaugeSamples flattens gathered gauge families into labeled samples.
// Non-gauge families are skipped.
func gaugeSamples(families []*dto.MetricFamily) []sample {
	var out []sample
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_GAUGE {
			continue
		}
		for _, m := range mf.GetMetric() {
			attrs := make([]attribute.KeyValue, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, attribute.String(lp.GetName(), lp.GetValue()))
			}
			out = append(out, sample{
				name:       mf.GetName(),
				value:      m.GetGauge().GetValue(),
				attributes: attrs,
			})
		}
	}
	return out
}
