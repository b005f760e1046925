// Package logstore implements sift's embedded partitioned topic log.
//
// # Overview
//
// Topics are split into fixed partitions and persisted in Pebble. Keys are
// lexicographically ordered for efficient range scans:
//   - tp/{topic}/m                    (topic metadata: partition count)
//   - tp/{topic}/p/{part_be4}/m       (partition metadata: end offset)
//   - tp/{topic}/p/{part_be4}/e/{off_be8} (entries)
//
// Records are stored as: varint keyLen | key | value | crc32c(key|value).
// Offsets are zero-based and dense per partition; the partition metadata
// carries the end offset (next offset to be written), which mirrors what a
// remote log broker reports for its partitions.
//
// API surface (internal)
//
//	st := logstore.Open(db)
//	_ = st.CreateTopic("events", 4)
//	offs, _ := st.Append(ctx, "events", 0, []logstore.AppendRecord{{Key: k, Value: v}})
//	items, _ := st.Read("events", 0, logstore.ReadOptions{Start: offs[0], Limit: 100})
//	end, _ := st.EndOffset("events", 0)
//
//	// Bounded blocking for pollers
//	woke := st.WaitForAppend(200 * time.Millisecond)
//	_ = woke
package logstore
