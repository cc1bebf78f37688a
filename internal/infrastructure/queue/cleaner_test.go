package queue

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

type stubCleanerStore struct {
	err  error
	done chan string
}

func (s *stubCleanerStore) Store(context.Context, io.Reader, ports.FileInfo) (*ports.StoredObject, error) {
	return nil, errors.New("not used")
}

func (s *stubCleanerStore) RetrievalURL(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("not used")
}

func (s *stubCleanerStore) Delete(_ context.Context, reference string) error {
	if s.err != nil {
		return s.err
	}
	s.done <- reference
	return nil
}

type stubLedger struct {
	done chan string
}

func (l *stubLedger) RecordOrphan(_ context.Context, reference string) error {
	l.done <- reference
	return nil
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestCleaner_DeletesScheduledReference(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &stubCleanerStore{done: make(chan string, 1)}
	ledger := &stubLedger{done: make(chan string, 1)}
	c := NewCleaner(2, store, ledger, zerolog.Nop())
	c.Start(ctx)

	c.Schedule("obj-1")
	waitFor(t, store.done, "obj-1")
}

func TestCleaner_FailedDeleteGoesToOrphanLedger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &stubCleanerStore{done: make(chan string, 1), err: errors.New("bucket unavailable")}
	ledger := &stubLedger{done: make(chan string, 1)}
	c := NewCleaner(2, store, ledger, zerolog.Nop())
	c.Start(ctx)

	c.Schedule("obj-2")
	waitFor(t, ledger.done, "obj-2")
}

func TestCleaner_EmptyReferenceIgnored(t *testing.T) {
	store := &stubCleanerStore{done: make(chan string, 1)}
	ledger := &stubLedger{done: make(chan string, 1)}
	c := NewCleaner(1, store, ledger, zerolog.Nop())
	// Not started: an enqueued reference would sit in the buffer, an ignored
	// one leaves it empty.
	c.Schedule("")
	if len(c.workers[0]) != 0 {
		t.Error("empty reference must not be enqueued")
	}
}

func TestCleaner_SameReferenceAlwaysSameWorker(t *testing.T) {
	c := NewCleaner(4, &stubCleanerStore{}, &stubLedger{}, zerolog.Nop())
	first := c.shardIndex("obj-xyz")
	for i := 0; i < 10; i++ {
		if c.shardIndex("obj-xyz") != first {
			t.Fatal("shard index must be stable per reference")
		}
	}
}
