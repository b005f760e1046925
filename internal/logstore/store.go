package logstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	pebblestore "github.com/rzbill/sift/internal/storage/pebble"
)

// ErrNoTopic is returned when a topic has no metadata record.
var ErrNoTopic = errors.New("logstore: topic not found")

// AppendRecord represents a single appendable key/value record.
type AppendRecord struct {
	Key   []byte
	Value []byte
}

// Store provides partitioned append-only topic logs over a shared Pebble DB.
// Appends are serialized per store; readers never block writers.
type Store struct {
	db *pebblestore.DB

	mu       sync.Mutex
	notifyCh chan struct{}
}

// Open wraps the given DB as a topic log store.
func Open(db *pebblestore.DB) *Store {
	return &Store{db: db, notifyCh: make(chan struct{})}
}

// CreateTopic records topic metadata if absent. Existing metadata wins;
// changing the partition count of an existing topic is not supported.
func (s *Store) CreateTopic(topic string, partitions uint32) error {
	if topic == "" || partitions == 0 {
		return errors.New("logstore: topic name and partition count required")
	}
	key := KeyTopicMeta(topic)
	if _, err := s.db.Get(key); err == nil {
		return nil
	} else if !errors.Is(err, pebblestore.ErrNotFound) {
		return err
	}
	var meta [4]byte
	binary.BigEndian.PutUint32(meta[:], partitions)
	return s.db.Set(key, meta[:])
}

// Partitions returns the partition count recorded for topic.
func (s *Store) Partitions(topic string) (uint32, error) {
	meta, err := s.db.Get(KeyTopicMeta(topic))
	if err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrNoTopic, topic)
		}
		return 0, err
	}
	if len(meta) < 4 {
		return 0, fmt.Errorf("logstore: corrupt topic meta for %s", topic)
	}
	return binary.BigEndian.Uint32(meta[:4]), nil
}

// Append appends records to one partition as a single atomic batch and
// returns the assigned offsets. Offsets start at zero per partition.
func (s *Store) Append(ctx context.Context, topic string, partition uint32, recs []AppendRecord) ([]uint64, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	end, err := s.endOffsetLocked(topic, partition)
	if err != nil {
		return nil, err
	}

	b := s.db.NewBatch()
	defer b.Close()

	offsets := make([]uint64, len(recs))
	for i, r := range recs {
		off := end
		end++
		val := EncodeRecord(r.Key, r.Value)
		if err := b.Set(KeyEntry(topic, partition, off), val, nil); err != nil {
			return nil, err
		}
		offsets[i] = off
	}

	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], end)
	if err := b.Set(KeyPartitionMeta(topic, partition), meta[:], nil); err != nil {
		return nil, err
	}

	if err := s.db.CommitBatch(ctx, b); err != nil {
		return nil, err
	}

	// wake pollers
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
	return offsets, nil
}

// EndOffset returns the next offset to be written for the partition.
// A partition that has never been written has end offset zero.
func (s *Store) EndOffset(topic string, partition uint32) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endOffsetLocked(topic, partition)
}

func (s *Store) endOffsetLocked(topic string, partition uint32) (uint64, error) {
	meta, err := s.db.Get(KeyPartitionMeta(topic, partition))
	if err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if len(meta) < 8 {
		return 0, fmt.Errorf("logstore: corrupt partition meta for %s/%d", topic, partition)
	}
	return binary.BigEndian.Uint64(meta[:8]), nil
}

// WaitForAppend blocks until any append occurs on the store or the timeout
// elapses. Returns true if woken by an append, false on timeout.
func (s *Store) WaitForAppend(timeout time.Duration) bool {
	s.mu.Lock()
	ch := s.notifyCh
	s.mu.Unlock()
	if timeout <= 0 {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}
