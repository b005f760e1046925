package checkpoint

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	pebblestore "github.com/rzbill/sift/internal/storage/pebble"
)

// BatchID names one processing cycle. Ids are assigned by the host
// pipeline and increase monotonically.
type BatchID uint64

// SourceOffsets is the per-partition read position snapshot recorded for
// one logical source at the start of a cycle.
type SourceOffsets struct {
	Source  string            `json:"source"`
	Offsets map[uint32]uint64 `json:"offsets"`
}

// OffsetLog reads the durable record of read positions written before each
// cycle starts processing.
type OffsetLog interface {
	LatestBatchID() (BatchID, bool, error)
	ReadOffsets(id BatchID) ([]SourceOffsets, bool, error)
}

// CommitLog reads the durable record of cycles whose output was confirmed
// published.
type CommitLog interface {
	LatestBatchID() (BatchID, bool, error)
}

// Store persists both checkpoint logs for one location in Pebble.
// Entries are immutable once written; only the latest ids move.
type Store struct {
	db       *pebblestore.DB
	location string
}

// OffsetView exposes just the offset log of a store.
type OffsetView struct{ s *Store }

// CommitView exposes just the commit log of a store.
type CommitView struct{ s *Store }

// OpenStore binds a checkpoint location inside the given DB.
func OpenStore(db *pebblestore.DB, location string) (*Store, error) {
	if location == "" {
		return nil, errors.New("checkpoint: location is required")
	}
	return &Store{db: db, location: location}, nil
}

// Location returns the opaque checkpoint location this store serves.
func (s *Store) Location() string { return s.location }

// Offsets returns the offset-log view of the store.
func (s *Store) Offsets() OffsetLog { return OffsetView{s: s} }

// Commits returns the commit-log view of the store.
func (s *Store) Commits() CommitLog { return CommitView{s: s} }

// WriteOffsets records the read positions for a cycle before it starts.
// An entry already present for id is left untouched.
func (s *Store) WriteOffsets(id BatchID, groups []SourceOffsets) error {
	key := KeyOffsets(s.location, id)
	if _, err := s.db.Get(key); err == nil {
		return nil
	} else if !errors.Is(err, pebblestore.ErrNotFound) {
		return err
	}
	val, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("checkpoint: encode offsets for cycle %d: %w", id, err)
	}
	return s.db.Set(key, val)
}

// WriteCommit records that a cycle's output was durably published.
func (s *Store) WriteCommit(id BatchID) error {
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], uint64(time.Now().UnixMilli()))
	return s.db.Set(KeyCommit(s.location, id), val[:])
}

// LatestBatchID reports the highest cycle id present in the offset log.
func (v OffsetView) LatestBatchID() (BatchID, bool, error) {
	low, hi := offsetsBounds(v.s.location)
	return v.s.latestID(low, hi)
}

// ReadOffsets loads the offsets entry recorded for a cycle.
func (v OffsetView) ReadOffsets(id BatchID) ([]SourceOffsets, bool, error) {
	val, err := v.s.db.Get(KeyOffsets(v.s.location, id))
	if err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var groups []SourceOffsets
	if err := json.Unmarshal(val, &groups); err != nil {
		return nil, false, fmt.Errorf("checkpoint: decode offsets for cycle %d: %w", id, err)
	}
	return groups, true, nil
}

// LatestBatchID reports the highest cycle id present in the commit log.
func (v CommitView) LatestBatchID() (BatchID, bool, error) {
	low, hi := commitsBounds(v.s.location)
	return v.s.latestID(low, hi)
}

func (s *Store) latestID(low, hi []byte) (BatchID, bool, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: hi})
	if err != nil {
		return 0, false, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, false, iter.Error()
	}
	k := iter.Key()
	if len(k) < 8 {
		return 0, false, errors.New("checkpoint: corrupt log key")
	}
	return BatchID(binary.BigEndian.Uint64(k[len(k)-8:])), true, nil
}
