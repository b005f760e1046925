package reconcile

import (
	"context"
	"sort"

	"github.com/rzbill/sift/internal/checkpoint"
	"github.com/rzbill/sift/internal/logclient"
)

// countPendingSource counts how many source records sat between the
// interrupted cycle's recorded read position and the log head. The count
// drives the depth of the sink tail scan.
//
// A partial count would under-size the tail scan and let duplicates
// through, so any read error aborts the pass with no result.
func (r *Reconciler) countPendingSource(ctx context.Context, src checkpoint.SourceOffsets) (int, error) {
	reader, err := r.openSource()
	if err != nil {
		return 0, readErr("open source reader", err)
	}
	defer reader.Close()

	if len(src.Offsets) > 0 {
		tps := make([]logclient.TopicPartition, 0, len(src.Offsets))
		for p := range src.Offsets {
			tps = append(tps, logclient.TopicPartition{Topic: r.sourceTopic, Partition: p})
		}
		sort.Slice(tps, func(i, j int) bool { return tps[i].Partition < tps[j].Partition })
		if err := reader.Assign(tps); err != nil {
			return 0, readErr("assign source partitions", err)
		}
		for _, tp := range tps {
			if err := reader.Seek(tp, src.Offsets[tp.Partition]); err != nil {
				return 0, readErr("seek source partition", err)
			}
		}
	} else {
		// No recorded position: scan the whole source.
		tps, err := reader.Partitions(r.sourceTopic)
		if err != nil {
			return 0, readErr("list source partitions", err)
		}
		if err := reader.Assign(tps); err != nil {
			return 0, readErr("assign source partitions", err)
		}
		if err := reader.SeekToEarliest(tps); err != nil {
			return 0, readErr("seek source to earliest", err)
		}
	}

	count := 0
	for {
		recs, err := reader.Poll(ctx, r.pollTimeout)
		if err != nil {
			return 0, readErr("poll source", err)
		}
		if len(recs) == 0 {
			// caught up to the log head
			return count, nil
		}
		count += len(recs)
	}
}
