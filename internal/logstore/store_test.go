package logstore

import (
	"context"
	"testing"
	"time"

	pebblestore "github.com/rzbill/sift/internal/storage/pebble"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return Open(db)
}

func TestAppendAssignsDenseOffsets(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	offs, err := st.Append(ctx, "t", 0, []AppendRecord{{Value: []byte("a")}, {Value: []byte("b")}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(offs) != 2 || offs[0] != 0 || offs[1] != 1 {
		t.Fatalf("want offsets [0 1], got %v", offs)
	}
	end, err := st.EndOffset("t", 0)
	if err != nil {
		t.Fatalf("end offset: %v", err)
	}
	if end != 2 {
		t.Fatalf("want end 2, got %d", end)
	}
}

func TestEndOffsetEmptyPartition(t *testing.T) {
	st := newTestStore(t)
	end, err := st.EndOffset("t", 7)
	if err != nil {
		t.Fatalf("end offset: %v", err)
	}
	if end != 0 {
		t.Fatalf("want 0, got %d", end)
	}
}

func TestPartitionsRequiresTopicMeta(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Partitions("missing"); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
	if err := st.CreateTopic("t", 3); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	n, err := st.Partitions("t")
	if err != nil {
		t.Fatalf("partitions: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 partitions, got %d", n)
	}
}

func TestCreateTopicIdempotent(t *testing.T) {
	st := newTestStore(t)
	if err := st.CreateTopic("t", 2); err != nil {
		t.Fatalf("create: %v", err)
	}
	// second create with a different count keeps the original
	if err := st.CreateTopic("t", 9); err != nil {
		t.Fatalf("re-create: %v", err)
	}
	n, err := st.Partitions("t")
	if err != nil {
		t.Fatalf("partitions: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2, got %d", n)
	}
}

func TestWaitForAppendWakesOnAppend(t *testing.T) {
	st := newTestStore(t)
	done := make(chan bool, 1)
	go func() { done <- st.WaitForAppend(2 * time.Second) }()
	time.Sleep(10 * time.Millisecond)
	if _, err := st.Append(context.Background(), "t", 0, []AppendRecord{{Value: []byte("x")}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if woke := <-done; !woke {
		t.Fatalf("expected wake by append, got timeout")
	}
}

func TestWaitForAppendTimesOut(t *testing.T) {
	st := newTestStore(t)
	if woke := st.WaitForAppend(10 * time.Millisecond); woke {
		t.Fatalf("expected timeout")
	}
}
