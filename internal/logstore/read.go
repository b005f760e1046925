package logstore

import (
	"encoding/binary"

	"github.com/cockroachdb/pebble"
)

// ReadOptions selects a forward range scan over one partition.
type ReadOptions struct {
	Start uint64 // first offset to return (inclusive)
	Limit int    // max items; 0 means unlimited
}

// Item is one record read from a partition.
type Item struct {
	Offset uint64
	Key    []byte
	Value  []byte
}

// Read returns up to Limit items from the partition, starting at opts.Start.
func (s *Store) Read(topic string, partition uint32, opts ReadOptions) ([]Item, error) {
	low := KeyEntry(topic, partition, opts.Start)
	hi := KeyEntry(topic, partition, ^uint64(0))

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: append(hi, 0x00)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	items := make([]Item, 0, max(1, opts.Limit))
	if !iter.First() {
		return items, iter.Error()
	}
	for iter.Valid() && (opts.Limit == 0 || len(items) < opts.Limit) {
		off := binary.BigEndian.Uint64(iter.Key()[len(low)-8:])
		dec, ok := DecodeRecord(iter.Value())
		if ok {
			items = append(items, Item{Offset: off, Key: dec.Key, Value: dec.Value})
		}
		if !iter.Next() {
			break
		}
	}
	return items, iter.Error()
}

// EarliestOffset returns the first retained offset of the partition.
// ok is false when the partition holds no entries.
func (s *Store) EarliestOffset(topic string, partition uint32) (uint64, bool, error) {
	low := KeyEntry(topic, partition, 0)
	hi := KeyEntry(topic, partition, ^uint64(0))

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: append(hi, 0x00)})
	if err != nil {
		return 0, false, err
	}
	defer iter.Close()

	if !iter.First() {
		return 0, false, iter.Error()
	}
	return binary.BigEndian.Uint64(iter.Key()[len(low)-8:]), true, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
