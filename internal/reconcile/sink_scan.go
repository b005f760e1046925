package reconcile

import (
	"context"

	"github.com/rzbill/sift/internal/logclient"
)

// tailScan is the per-partition state of the backward scan: the lower
// bound only ever decreases and the drained records only ever grow, which
// is what guarantees termination.
type tailScan struct {
	lower   uint64
	records []logclient.Record
}

// latestSinkRecords recovers at least target of the most recently
// published records from every sink partition, without reading partitions
// from the start when their tails are deep. One inner slice per partition.
func (r *Reconciler) latestSinkRecords(ctx context.Context, target int) ([][]logclient.Record, error) {
	reader, err := r.openSink()
	if err != nil {
		return nil, readErr("open sink reader", err)
	}
	defer reader.Close()

	tps, err := reader.Partitions(r.sinkTopic)
	if err != nil {
		return nil, readErr("list sink partitions", err)
	}

	out := make([][]logclient.Record, 0, len(tps))
	for _, tp := range tps {
		recs, err := r.scanTail(ctx, reader, tp, target)
		if err != nil {
			return nil, err
		}
		r.metrics.ObserveSinkScan(tp.Partition, len(recs))
		out = append(out, recs)
	}
	return out, nil
}

// scanTail walks the partition backward from its end offset. Each
// iteration lowers the bound by target (clamped at zero) and re-drains
// from there, stopping once enough records are in hand or the whole
// partition has been read.
func (r *Reconciler) scanTail(ctx context.Context, reader logclient.Reader, tp logclient.TopicPartition, target int) ([]logclient.Record, error) {
	end, err := reader.EndOffset(tp)
	if err != nil {
		return nil, readErr("read sink end offset", err)
	}
	if err := reader.Assign([]logclient.TopicPartition{tp}); err != nil {
		return nil, readErr("assign sink partition", err)
	}

	st := tailScan{lower: end}
	step := uint64(target)
	for {
		if st.lower > step {
			st.lower -= step
		} else {
			st.lower = 0
		}
		if err := reader.Seek(tp, st.lower); err != nil {
			return nil, readErr("seek sink partition", err)
		}
		recs, err := drain(ctx, reader, r)
		if err != nil {
			return nil, err
		}
		st.records = recs
		if len(st.records) >= target || st.lower == 0 {
			return st.records, nil
		}
	}
}

// drain reads until the first empty poll, which marks the log head.
func drain(ctx context.Context, reader logclient.Reader, r *Reconciler) ([]logclient.Record, error) {
	var out []logclient.Record
	for {
		recs, err := reader.Poll(ctx, r.pollTimeout)
		if err != nil {
			return nil, readErr("poll sink", err)
		}
		if len(recs) == 0 {
			return out, nil
		}
		out = append(out, recs...)
	}
}
