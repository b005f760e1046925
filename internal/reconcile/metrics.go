package reconcile

// Metrics is a minimal hook surface for reconciliation observations.
type Metrics interface {
	// ObserveCheck is called once per pass with the checkpoint comparison
	// outcome: pending is true when an uncommitted cycle was found.
	ObserveCheck(pending bool)
	// ObservePending reports how many source records were in flight during
	// the interrupted cycle.
	ObservePending(count int)
	// ObserveSinkScan reports how many records the tail scan recovered from
	// one sink partition.
	ObserveSinkScan(partition uint32, recovered int)
	// ObserveFilter reports the filter outcome for the candidate batch.
	ObserveFilter(kept, dropped int)
}

// NoopMetrics is used when no metrics hook is provided.
type NoopMetrics struct{}

func (NoopMetrics) ObserveCheck(bool)            {}
func (NoopMetrics) ObservePending(int)           {}
func (NoopMetrics) ObserveSinkScan(uint32, int)  {}
func (NoopMetrics) ObserveFilter(int, int)       {}
