package command

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// lockedWriter is a Writer safe for concurrent use by the TXWriter goroutine
// and test assertions.
type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	err error
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return 0, w.err
	}
	return w.buf.Write(p)
}

func (w *lockedWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Len()
}

func TestTXWriterSendWritesEncodedFrame(t *testing.T) {
	w := &lockedWriter{}
	tx := NewTXWriter(context.Background(), w, 4)
	defer tx.Close()

	c := Command{Op: 1, Args: []byte{0x10, 0x20}}
	if err := tx.Send(c); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	want := len(Encode(c))
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) && w.Len() < want {
		time.Sleep(5 * time.Millisecond)
	}
	if w.Len() != want {
		t.Fatalf("expected %d bytes written, got %d", want, w.Len())
	}
}

func TestTXWriterOverflowReturnsErrTxOverflow(t *testing.T) {
	// Block the writer goroutine on the first send so the single-slot
	// buffer fills and a subsequent Send observes a full channel.
	blocking := make(chan struct{})
	slow := &blockingWriter{release: blocking}
	tx := NewTXWriter(context.Background(), slow, 1)
	defer func() {
		close(blocking)
		tx.Close()
	}()

	// The first send is picked up by the worker goroutine immediately and
	// blocks inside send(); the second fills the single buffered slot; the
	// third has nowhere to go and must overflow.
	if err := tx.Send(Command{Op: 1}); err != nil {
		t.Fatalf("unexpected error on first send: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := tx.Send(Command{Op: 2}); err != nil {
		t.Fatalf("unexpected error on second send: %v", err)
	}
	if err := tx.Send(Command{Op: 3}); !errors.Is(err, ErrTxOverflow) {
		t.Fatalf("expected ErrTxOverflow, got %v", err)
	}
}

type blockingWriter struct{ release chan struct{} }

func (b *blockingWriter) Write(p []byte) (int, error) {
	<-b.release
	return len(p), nil
}

func TestTXWriterCloseStopsDelivery(t *testing.T) {
	w := &lockedWriter{}
	tx := NewTXWriter(context.Background(), w, 2)
	if err := tx.Send(Command{Op: 1}); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	tx.Close()
	lenAfterClose := w.Len()
	_ = tx.Send(Command{Op: 2})
	time.Sleep(50 * time.Millisecond)
	if w.Len() != lenAfterClose {
		t.Fatalf("writer received bytes after Close: before=%d after=%d", lenAfterClose, w.Len())
	}
}
