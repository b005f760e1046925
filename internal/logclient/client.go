package logclient

import (
	"context"
	"time"
)

// TopicPartition names one partition of a topic.
type TopicPartition struct {
	Topic     string
	Partition uint32
}

// Record is one consumed record with its log position.
type Record struct {
	Topic     string
	Partition uint32
	Offset    uint64
	Key       []byte
	Value     []byte
}

// Reader is a partition-addressable log consumer. Implementations are not
// safe for concurrent use; each reconciliation pass opens its own Reader
// and closes it before returning.
type Reader interface {
	// Assign replaces the reader's partition assignment. Read positions for
	// newly assigned partitions start at the beginning of the partition
	// until moved with Seek or SeekToEarliest.
	Assign(partitions []TopicPartition) error

	// Seek moves the read position of an assigned partition.
	Seek(tp TopicPartition, offset uint64) error

	// SeekToEarliest moves the given assigned partitions to their earliest
	// retained offset.
	SeekToEarliest(partitions []TopicPartition) error

	// Partitions lists all partitions of a topic.
	Partitions(topic string) ([]TopicPartition, error)

	// Poll returns the next batch of available records from the assigned
	// partitions, advancing read positions past everything returned. It
	// blocks up to timeout waiting for records and returns an empty slice
	// when none arrive in time. Poll never blocks indefinitely.
	Poll(ctx context.Context, timeout time.Duration) ([]Record, error)

	// EndOffset reports the next offset to be written to the partition.
	EndOffset(tp TopicPartition) (uint64, error)

	// Close releases the reader. Any call after Close fails.
	Close() error
}
