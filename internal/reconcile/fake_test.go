package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rzbill/sift/internal/logclient"
)

// fakeBroker holds per-topic partitioned records for orchestrator tests.
// Reads are served instantly, so tests can use near-zero poll timeouts.
type fakeBroker struct {
	topics map[string][][]fakeRec // topic → partition → records
}

type fakeRec struct {
	key   []byte
	value []byte
}

func idRec(id string) fakeRec {
	return fakeRec{value: []byte(fmt.Sprintf(`{"id":%q}`, id))}
}

func (b *fakeBroker) addTopic(topic string, parts ...[]fakeRec) {
	if b.topics == nil {
		b.topics = map[string][][]fakeRec{}
	}
	b.topics[topic] = parts
}

// fakeReader implements logclient.Reader over a fakeBroker, with optional
// injected failures and call accounting.
type fakeReader struct {
	broker  *fakeBroker
	maxPoll int

	assigned []logclient.TopicPartition
	pos      map[logclient.TopicPartition]uint64
	closed   bool

	pollErr error
	endErr  error
}

var _ logclient.Reader = (*fakeReader)(nil)

func newFakeReader(b *fakeBroker) *fakeReader {
	return &fakeReader{broker: b, maxPoll: 2, pos: map[logclient.TopicPartition]uint64{}}
}

func (f *fakeReader) Assign(partitions []logclient.TopicPartition) error {
	if f.closed {
		return logclient.ErrClosed
	}
	f.assigned = append([]logclient.TopicPartition(nil), partitions...)
	f.pos = make(map[logclient.TopicPartition]uint64, len(partitions))
	for _, tp := range partitions {
		f.pos[tp] = 0
	}
	return nil
}

func (f *fakeReader) Seek(tp logclient.TopicPartition, offset uint64) error {
	if f.closed {
		return logclient.ErrClosed
	}
	if _, ok := f.pos[tp]; !ok {
		return fmt.Errorf("seek on unassigned partition %v", tp)
	}
	f.pos[tp] = offset
	return nil
}

func (f *fakeReader) SeekToEarliest(partitions []logclient.TopicPartition) error {
	for _, tp := range partitions {
		if err := f.Seek(tp, 0); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeReader) Partitions(topic string) ([]logclient.TopicPartition, error) {
	if f.closed {
		return nil, logclient.ErrClosed
	}
	parts, ok := f.broker.topics[topic]
	if !ok {
		return nil, fmt.Errorf("unknown topic %q", topic)
	}
	tps := make([]logclient.TopicPartition, 0, len(parts))
	for p := range parts {
		tps = append(tps, logclient.TopicPartition{Topic: topic, Partition: uint32(p)})
	}
	return tps, nil
}

// Poll returns at most maxPoll records per call so drain loops see several
// non-empty polls before the terminating empty one.
func (f *fakeReader) Poll(ctx context.Context, timeout time.Duration) ([]logclient.Record, error) {
	if f.closed {
		return nil, logclient.ErrClosed
	}
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	var out []logclient.Record
	for _, tp := range f.assigned {
		parts := f.broker.topics[tp.Topic]
		if int(tp.Partition) >= len(parts) {
			continue
		}
		recs := parts[tp.Partition]
		for f.pos[tp] < uint64(len(recs)) && len(out) < f.maxPoll {
			off := f.pos[tp]
			out = append(out, logclient.Record{
				Topic:     tp.Topic,
				Partition: tp.Partition,
				Offset:    off,
				Key:       recs[off].key,
				Value:     recs[off].value,
			})
			f.pos[tp] = off + 1
		}
	}
	return out, nil
}

func (f *fakeReader) EndOffset(tp logclient.TopicPartition) (uint64, error) {
	if f.endErr != nil {
		return 0, f.endErr
	}
	parts, ok := f.broker.topics[tp.Topic]
	if !ok || int(tp.Partition) >= len(parts) {
		return 0, fmt.Errorf("unknown partition %v", tp)
	}
	return uint64(len(parts[tp.Partition])), nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

// readerFactory builds fakeReaders over broker and records every reader it
// handed out, so tests can assert opens and closes.
type readerFactory struct {
	broker  *fakeBroker
	opened  []*fakeReader
	openErr error
	prep    func(*fakeReader)
}

func (rf *readerFactory) open() (logclient.Reader, error) {
	if rf.openErr != nil {
		return nil, rf.openErr
	}
	r := newFakeReader(rf.broker)
	if rf.prep != nil {
		rf.prep(r)
	}
	rf.opened = append(rf.opened, r)
	return r, nil
}

func (rf *readerFactory) allClosed() bool {
	for _, r := range rf.opened {
		if !r.closed {
			return false
		}
	}
	return true
}
