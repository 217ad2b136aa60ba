package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/sbgstream/sbgstream/internal/command"
	"github.com/sbgstream/sbgstream/internal/hub"
	"github.com/sbgstream/sbgstream/internal/metrics"
)

// startReader launches the goroutine that reads inbound commands from a
// single relay client and forwards them to the device via s.Send.
func (s *Server) startReader(ctxDone <-chan struct{}, conn net.Conn, cl *hub.Client, logger *slog.Logger) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() { _ = conn.Close() }()
		scanner := newCommandScanner(conn)
		for {
			_ = conn.SetReadDeadline(time.Now().Add(s.readDeadline))
			cmd, err := scanner.next()
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
					return
				}
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					select {
					case <-ctxDone:
						return
					default:
						continue
					}
				}
				wrap := fmt.Errorf("%w: %v", ErrConnRead, err)
				metrics.IncError(mapErrToMetric(wrap))
				s.setError(wrap)
				return
			}
			metrics.IncTCPRx()
			if s.Send != nil {
				if err := s.Send(cmd); err != nil {
					if errors.Is(err, command.ErrTxOverflow) {
						s.totalCmdOverflow.Add(1)
						logger.Debug("command_overflow_drop", "op", cmd.Op)
					} else {
						s.totalCmdErrors.Add(1)
						wrap := fmt.Errorf("%w: %v", ErrDeviceTx, err)
						s.setError(wrap)
						logger.Error("command_tx_error", "error", wrap, "op", cmd.Op)
					}
				}
			}
			select {
			case <-ctxDone:
				return
			default:
			}
		}
	}()
}
