package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sbgstream/sbgstream/internal/command"
	"github.com/sbgstream/sbgstream/internal/dispatch"
	"github.com/sbgstream/sbgstream/internal/hub"
	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/metrics"
	"github.com/sbgstream/sbgstream/internal/protocol"
	"github.com/sbgstream/sbgstream/internal/transport"
)

// sleepFn allows tests to intercept backoff sleeps.
var sleepFn = time.Sleep

// openSourceFn is a seam for tests to substitute a fake transport.Source.
var openSourceFn = openSource

// initIngest opens the configured backend, launches its RX loop decoding
// frames and broadcasting them to the hub (and, if publish is non-nil,
// fanning them out to a secondary sink such as Redis), and returns a
// command sender plus a cleanup func. Errors are returned rather than
// exiting the process so main can log and shut down gracefully.
func initIngest(ctx context.Context, cfg *appConfig, h *hub.Hub, publish func(messages.Message), l *slog.Logger, wg *sync.WaitGroup) (func(command.Command) error, func(), error) {
	src, err := openSourceFn(cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open %s source: %w", cfg.backend, err)
	}
	l.Info("source_open", "backend", cfg.backend, "device", cfg.device, "udp_addr", cfg.udpAddr, "file", cfg.filePath)

	tx := command.NewTXWriter(ctx, src, txQueueSize)

	reassembler := protocol.NewReassembler()
	dispatcher := dispatch.NewDispatcher()
	onFrame := func(f protocol.Frame) {
		m, derr := dispatcher.Dispatch(f)
		if derr != nil {
			return
		}
		h.Broadcast(m)
		if publish != nil {
			publish(m)
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer l.Info("ingest_rx_end")
		buf := make([]byte, sourceReadBufSize)
		backoff := rxBackoffMin
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			n, rerr := src.Read(buf)
			if n > 0 {
				reassembler.Write(buf[:n])
				reassembler.Decode(onFrame)
				backoff = rxBackoffMin
			}
			if rerr != nil {
				if ctx.Err() != nil {
					return
				}
				if isTimeoutErr(rerr) {
					continue
				}
				metrics.IncError(metrics.ErrSourceRead)
				l.Warn("source_read_error", "error", rerr, "backoff", backoff)
				sleepFn(backoff)
				backoff *= 2
				if backoff > rxBackoffMax {
					backoff = rxBackoffMax
				}
			}
		}
	}()

	return tx.Send, func() { _ = src.Close(); tx.Close() }, nil
}

// openSource opens the ingestion backend chosen by cfg.backend.
func openSource(cfg *appConfig) (transport.Source, error) {
	switch cfg.backend {
	case "serial":
		return transport.OpenSerial(cfg.device, cfg.baud, cfg.readTO)
	case "udp":
		return transport.OpenUDP(cfg.udpAddr)
	case "file":
		return transport.OpenFile(cfg.filePath)
	default:
		return nil, fmt.Errorf("unknown backend %q (use serial|udp|file)", cfg.backend)
	}
}

// isTimeoutErr reports whether err is a source read timeout, which the RX
// loop treats as a normal poll cycle rather than a failure.
func isTimeoutErr(err error) bool {
	type timeout interface{ Timeout() bool }
	te, ok := err.(timeout)
	return ok && te.Timeout()
}
