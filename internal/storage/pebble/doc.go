// Package pebblestore wraps Pebble with sift's durability policy.
//
// One DB instance backs everything the binary persists: the checkpoint
// offset/commit logs and the embedded topic logs. The wrapper keeps the
// surface small (Get/Set, batches, iterators) and centralizes the fsync
// decision so callers never pass pebble.WriteOptions themselves.
package pebblestore
