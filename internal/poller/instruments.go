package poller

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Internal metric names.
const (
	cyclesTotalName   = "ocimon_poll_cycles_total"
	cycleDurationName = "ocimon_poll_cycle_duration_seconds"
	failuresTotalName = "ocimon_fetch_failures_total"
)

// Instruments records the poller's own behavior.
type Instruments struct {
	cyclesTotal   prometheus.Counter
	cycleDuration prometheus.Histogram
	failuresTotal *prometheus.CounterVec
}

// NewInstruments creates unregistered poller instruments.
func NewInstruments() *Instruments {
	return &Instruments{
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: cyclesTotalName,
			Help: "Total number of completed poll cycles",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    cycleDurationName,
			Help:    "Duration of poll cycles in seconds, excluding the sleep",
			Buckets: prometheus.DefBuckets,
		}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: failuresTotalName,
			Help: "Total number of failed fetch operations",
		}, []string{"operation"}),
	}
}

// Collectors returns every instrument for registration.
func (in *Instruments) Collectors() []prometheus.Collector {
	return []prometheus.Collector{in.cyclesTotal, in.cycleDuration, in.failuresTotal}
}

func (in *Instruments) observeCycle(d time.Duration) {
	in.cyclesTotal.Inc()
	in.cycleDuration.Observe(d.Seconds())
}

func (in *Instruments) observeFailure(op string) {
	in.failuresTotal.WithLabelValues(op).Inc()
}
