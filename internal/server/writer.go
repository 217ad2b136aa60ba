package server

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/sbgstream/sbgstream/internal/hub"
	"github.com/sbgstream/sbgstream/internal/metrics"
)

// startWriter launches the goroutine pushing hub messages out to a single
// client connection as newline-delimited JSON, queuing encoded lines and
// writing them out on each flushInterval tick or once batchSize lines are
// queued (one Write call per line).
func (s *Server) startWriter(ctxDone <-chan struct{}, conn net.Conn, cl *hub.Client, logger *slog.Logger) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			_ = conn.Close()
			if s.Hub != nil {
				s.Hub.Remove(cl)
			}
			s.totalDisconnected.Add(1)
			logger.Info("client_disconnected")
		}()
		t := time.NewTicker(s.flushInterval)
		defer t.Stop()
		batch := make([][]byte, 0, s.batchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			n := len(batch)
			for _, line := range batch {
				if _, err := conn.Write(line); err != nil {
					batch = batch[:0]
					wrap := fmt.Errorf("%w: %v", ErrConnWrite, err)
					metrics.IncError(mapErrToMetric(wrap))
					s.setError(wrap)
					return wrap
				}
			}
			batch = batch[:0]
			metrics.AddTCPTx(n)
			return nil
		}
		for {
			select {
			case m := <-cl.Out:
				if s.messageFilter != nil && !s.messageFilter(&m) {
					continue
				}
				line, err := encodeMessage(m)
				if err != nil {
					logger.Warn("message_encode_error", "error", err, "kind", m.Kind)
					continue
				}
				batch = append(batch, line)
				if len(batch) >= s.batchSize {
					if err := flush(); err != nil {
						return
					}
				}
			case <-t.C:
				if err := flush(); err != nil {
					return
				}
			case <-cl.Closed:
				_ = flush()
				return
			case <-ctxDone:
				_ = flush()
				return
			}
		}
	}()
}
