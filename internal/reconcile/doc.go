// Package reconcile upgrades an at-least-once pipeline to effectively
// exactly-once delivery.
//
// A pipeline cycle records its read positions in the offset log before
// processing and writes the commit log only after its output is durably
// published. When a cycle dies in between, the next cycle would re-read
// and re-publish records that already reached the sink. Reconcile closes
// that window without any transactional support from the log store:
//
//  1. CHECK      — compare the two checkpoint logs; if they agree, done.
//  2. RECOVER    — re-read the source from the interrupted cycle's
//     recorded offsets and count what was in flight.
//  3. SCAN SINK  — per sink partition, walk backward from the end offset
//     until at least that many recent records are recovered.
//  4. FILTER     — drop candidate rows whose identity key appears among
//     the recovered sink records.
//
// Every pass opens and closes its own readers, holds no state afterward,
// and fails outright rather than returning a partial result.
package reconcile
