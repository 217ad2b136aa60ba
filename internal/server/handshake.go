package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// handshakeHello is exchanged by both sides of a relay connection before any
// telemetry or commands flow, so a plain TCP client cannot be mistaken for a
// relay subscriber (or vice versa).
const handshakeHello = "SBGSTREAMv1"

// Handshake runs the required hello exchange.
func (s *Server) Handshake(ctx context.Context, c net.Conn) error {
	if deadlineErr := c.SetDeadline(time.Now().Add(s.handshakeTimeout)); deadlineErr != nil {
		return fmt.Errorf("set deadline: %w", deadlineErr)
	}
	defer c.SetDeadline(time.Time{})

	errCh := make(chan error, 2)

	// Writer
	go func() {
		_, err := io.WriteString(c, handshakeHello)
		errCh <- err
	}()

	// Reader
	go func() {
		buf := make([]byte, len(handshakeHello))
		_, err := io.ReadFull(c, buf)
		if err == nil && string(buf) != handshakeHello {
			err = errors.New("bad hello")
		}
		errCh <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("handshake: %w", err)
			}
		}
	}
	return nil
}
