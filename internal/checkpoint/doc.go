// Package checkpoint persists and reconciles the two logs a pipeline
// advances independently: the offset log, written before a cycle starts
// reading, and the commit log, written after the cycle's output is
// durably published.
//
// For a healthy pipeline the latest cycle id in both logs is the same.
// When the offset log is ahead, the cycle it names was interrupted between
// recording its inputs and confirming its outputs; DetectUncommittedCycle
// surfaces that cycle's recorded read positions so the caller can work out
// what may already have reached the sink.
package checkpoint
