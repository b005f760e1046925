package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rzbill/sift/internal/checkpoint"
)

func newScanFixture(t *testing.T, broker *fakeBroker) *fixture {
	t.Helper()
	// checkpoint contents are irrelevant for direct scanner tests
	return newFixture(t, memOffsetLog{}, memCommitLog{}, broker)
}

func TestCountPendingFromRecordedOffsets(t *testing.T) {
	broker := &fakeBroker{}
	broker.addTopic("src", make([]fakeRec, 4), make([]fakeRec, 5))
	f := newScanFixture(t, broker)

	n, err := f.rec.countPendingSource(context.Background(), checkpoint.SourceOffsets{
		Source:  "s",
		Offsets: map[uint32]uint64{0: 1, 1: 2},
	})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 6 {
		t.Fatalf("want 6 pending, got %d", n)
	}
	if !f.source.allClosed() {
		t.Fatalf("reader must be closed")
	}
}

func TestCountPendingNoRecordedOffsetsScansFromEarliest(t *testing.T) {
	broker := &fakeBroker{}
	broker.addTopic("src", make([]fakeRec, 4), make([]fakeRec, 5))
	f := newScanFixture(t, broker)

	n, err := f.rec.countPendingSource(context.Background(), checkpoint.SourceOffsets{Source: "s"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 9 {
		t.Fatalf("want 9 pending, got %d", n)
	}
}

func TestCountPendingEmptySource(t *testing.T) {
	broker := &fakeBroker{}
	broker.addTopic("src", nil)
	f := newScanFixture(t, broker)

	n, err := f.rec.countPendingSource(context.Background(), checkpoint.SourceOffsets{Source: "s"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("want 0 pending, got %d", n)
	}
}

// The scan must stop at the first empty poll, not run for a fixed number
// of iterations.
func TestCountPendingTerminatesOnIdleLog(t *testing.T) {
	broker := &fakeBroker{}
	broker.addTopic("src", make([]fakeRec, 7))
	f := newScanFixture(t, broker)

	done := make(chan struct{})
	go func() {
		defer close(done)
		n, err := f.rec.countPendingSource(context.Background(), checkpoint.SourceOffsets{
			Source:  "s",
			Offsets: map[uint32]uint64{0: 0},
		})
		if err != nil || n != 7 {
			t.Errorf("count: n=%d err=%v", n, err)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("scan did not terminate")
	}
}

func TestCountPendingOpenFailure(t *testing.T) {
	f := newScanFixture(t, &fakeBroker{})
	f.source.openErr = errors.New("no broker")

	_, err := f.rec.countPendingSource(context.Background(), checkpoint.SourceOffsets{Source: "s"})
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("want ReadError, got %v", err)
	}
}

func TestCountPendingPollFailureClosesReader(t *testing.T) {
	broker := &fakeBroker{}
	broker.addTopic("src", make([]fakeRec, 3))
	f := newScanFixture(t, broker)
	f.source.prep = func(r *fakeReader) { r.pollErr = errors.New("io") }

	_, err := f.rec.countPendingSource(context.Background(), checkpoint.SourceOffsets{
		Source:  "s",
		Offsets: map[uint32]uint64{0: 0},
	})
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("want ReadError, got %v", err)
	}
	if !f.source.allClosed() {
		t.Fatalf("reader must be closed on failure")
	}
}
