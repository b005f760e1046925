// Package metrics exposes reconciliation counters to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements reconcile.Metrics over a Prometheus registry.
type Collector struct {
	checks      *prometheus.CounterVec
	pending     prometheus.Histogram
	sinkScanned *prometheus.CounterVec
	rowsKept    prometheus.Counter
	rowsDropped prometheus.Counter
}

// NewCollector builds the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "checkpoint_checks_total",
			Help:      "Checkpoint comparisons by outcome (clean or pending).",
		}, []string{"outcome"}),
		pending: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sift",
			Name:      "pending_source_records",
			Help:      "Source records found in flight for interrupted cycles.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		sinkScanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "sink_records_recovered_total",
			Help:      "Records recovered by sink tail scans, by partition.",
		}, []string{"partition"}),
		rowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "rows_kept_total",
			Help:      "Candidate rows kept after deduplication.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "rows_dropped_total",
			Help:      "Candidate rows dropped as already published.",
		}),
	}
	reg.MustRegister(c.checks, c.pending, c.sinkScanned, c.rowsKept, c.rowsDropped)
	return c
}

// ObserveCheck records one checkpoint comparison outcome.
func (c *Collector) ObserveCheck(pending bool) {
	outcome := "clean"
	if pending {
		outcome = "pending"
	}
	c.checks.WithLabelValues(outcome).Inc()
}

// ObservePending records the in-flight count of an interrupted cycle.
func (c *Collector) ObservePending(count int) {
	c.pending.Observe(float64(count))
}

// ObserveSinkScan records one partition's tail scan result.
func (c *Collector) ObserveSinkScan(partition uint32, recovered int) {
	c.sinkScanned.WithLabelValues(strconv.FormatUint(uint64(partition), 10)).Add(float64(recovered))
}

// ObserveFilter records the filter outcome for one pass.
func (c *Collector) ObserveFilter(kept, dropped int) {
	c.rowsKept.Add(float64(kept))
	c.rowsDropped.Add(float64(dropped))
}
