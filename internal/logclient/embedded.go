package logclient

import (
	"context"
	"errors"
	"time"

	"github.com/rzbill/sift/internal/logstore"
)

// ErrClosed is returned by any Reader call made after Close.
var ErrClosed = errors.New("logclient: reader is closed")

const defaultMaxPollRecords = 500

// Embedded reads from the in-process logstore through the Reader surface,
// so reconciliation code is indifferent to whether the log is local or a
// remote broker.
type Embedded struct {
	store   *logstore.Store
	maxPoll int

	closed   bool
	assigned []TopicPartition
	pos      map[TopicPartition]uint64
}

var _ Reader = (*Embedded)(nil)

// NewEmbedded builds a Reader over the given store. maxPoll caps the number
// of records a single Poll returns; zero selects the default.
func NewEmbedded(store *logstore.Store, maxPoll int) *Embedded {
	if maxPoll <= 0 {
		maxPoll = defaultMaxPollRecords
	}
	return &Embedded{store: store, maxPoll: maxPoll, pos: map[TopicPartition]uint64{}}
}

// Assign replaces the current assignment. Positions reset to zero.
func (e *Embedded) Assign(partitions []TopicPartition) error {
	if e.closed {
		return ErrClosed
	}
	e.assigned = append([]TopicPartition(nil), partitions...)
	e.pos = make(map[TopicPartition]uint64, len(partitions))
	for _, tp := range partitions {
		e.pos[tp] = 0
	}
	return nil
}

// Seek moves the read position of an assigned partition.
func (e *Embedded) Seek(tp TopicPartition, offset uint64) error {
	if e.closed {
		return ErrClosed
	}
	if _, ok := e.pos[tp]; !ok {
		return errors.New("logclient: seek on unassigned partition")
	}
	e.pos[tp] = offset
	return nil
}

// SeekToEarliest moves the given partitions to their earliest retained offset.
func (e *Embedded) SeekToEarliest(partitions []TopicPartition) error {
	if e.closed {
		return ErrClosed
	}
	for _, tp := range partitions {
		if _, ok := e.pos[tp]; !ok {
			return errors.New("logclient: seek on unassigned partition")
		}
		off, ok, err := e.store.EarliestOffset(tp.Topic, tp.Partition)
		if err != nil {
			return err
		}
		if !ok {
			off = 0
		}
		e.pos[tp] = off
	}
	return nil
}

// Partitions lists all partitions of a topic from its metadata.
func (e *Embedded) Partitions(topic string) ([]TopicPartition, error) {
	if e.closed {
		return nil, ErrClosed
	}
	n, err := e.store.Partitions(topic)
	if err != nil {
		return nil, err
	}
	tps := make([]TopicPartition, 0, n)
	for p := uint32(0); p < n; p++ {
		tps = append(tps, TopicPartition{Topic: topic, Partition: p})
	}
	return tps, nil
}

// Poll drains up to maxPoll available records across the assignment,
// waiting up to timeout for the first record to appear.
func (e *Embedded) Poll(ctx context.Context, timeout time.Duration) ([]Record, error) {
	if e.closed {
		return nil, ErrClosed
	}
	deadline := time.Now().Add(timeout)
	for {
		recs, err := e.fetch()
		if err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			return recs, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}
		// Wake early on appends; cap the wait so ctx is rechecked.
		if remaining > 50*time.Millisecond {
			remaining = 50 * time.Millisecond
		}
		e.store.WaitForAppend(remaining)
	}
}

func (e *Embedded) fetch() ([]Record, error) {
	var out []Record
	for _, tp := range e.assigned {
		budget := e.maxPoll - len(out)
		if budget <= 0 {
			break
		}
		items, err := e.store.Read(tp.Topic, tp.Partition, logstore.ReadOptions{Start: e.pos[tp], Limit: budget})
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, Record{
				Topic:     tp.Topic,
				Partition: tp.Partition,
				Offset:    it.Offset,
				Key:       it.Key,
				Value:     it.Value,
			})
			e.pos[tp] = it.Offset + 1
		}
	}
	return out, nil
}

// EndOffset reports the next offset to be written to the partition.
func (e *Embedded) EndOffset(tp TopicPartition) (uint64, error) {
	if e.closed {
		return 0, ErrClosed
	}
	return e.store.EndOffset(tp.Topic, tp.Partition)
}

// Close releases the reader.
func (e *Embedded) Close() error {
	e.closed = true
	e.assigned = nil
	e.pos = nil
	return nil
}
