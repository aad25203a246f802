// Package fetcher reads upstream signals and writes them into gauges.
//
// Every operation returns an error instead of swallowing it; callers
// decide whether to log and continue. An empty time-series result is
// reported as ErrNoData and leaves the gauge untouched.
package fetcher

import (
	"errors"

	"github.com/neox5/ocimon/internal/metric"
)

// ErrNoData reports a successful query that returned no data points.
var ErrNoData = errors.New("no data points")

// Recorder receives gauge writes.
type Recorder interface {
	Set(g metric.Gauge, value float64, labelValues ...string) error
}
