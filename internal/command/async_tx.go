package command

import (
	"context"
	"errors"

	"github.com/sbgstream/sbgstream/internal/logging"
	"github.com/sbgstream/sbgstream/internal/metrics"
	"github.com/sbgstream/sbgstream/internal/transport"
)

// ErrTxOverflow is returned when the outbound command queue is full.
var ErrTxOverflow = errors.New("command tx overflow")

// Writer is the subset of transport.Source the command channel writes to.
type Writer interface {
	Write(p []byte) (int, error)
}

// TXWriter funnels all outbound commands for one device connection through
// a single goroutine, so a burst of configuration requests cannot
// interleave their wire bytes.
type TXWriter struct{ base *transport.AsyncTx }

// NewTXWriter creates a command TXWriter with a buffered channel of size buf.
func NewTXWriter(parent context.Context, w Writer, buf int) *TXWriter {
	send := func(fr []byte) error {
		_, err := w.Write(fr)
		return err
	}
	hooks := transport.Hooks{
		OnError: func(err error) {
			metrics.IncError(metrics.ErrCommandTx)
			logging.L().Error("command_write_error", "error", err)
		},
		OnAfter: metrics.IncCommandSent,
		OnDrop: func() error {
			return ErrTxOverflow
		},
	}
	return &TXWriter{base: transport.NewAsyncTx(parent, buf, send, hooks)}
}

// Send queues c for asynchronous transmission (drops with ErrTxOverflow if
// the buffer is full).
func (w *TXWriter) Send(c Command) error { return w.base.SendFrame(Encode(c)) }

// Close stops the writer and waits for the pending goroutine to exit.
func (w *TXWriter) Close() { w.base.Close() }
