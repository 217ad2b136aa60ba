package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sbgstream/sbgstream/internal/metrics"
)

func startMetricsLogger(ctx context.Context, interval time.Duration, l *slog.Logger, wg *sync.WaitGroup) {
	if interval <= 0 {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				snap := metrics.Snap()
				l.Info("metrics_snapshot",
					"frames_decoded", snap.FramesDecoded,
					"crc_failures", snap.CRCFailures,
					"resyncs", snap.Resyncs,
					"dispatch_misses", snap.DispatchMisses,
					"session_completions", snap.SessionCompletions,
					"hub_drops", snap.HubDrops,
					"hub_kicks", snap.HubKicks,
					"hub_rejects", snap.HubRejects,
					"hub_clients", snap.HubClients,
					"tcp_rx", snap.TCPRx,
					"tcp_tx", snap.TCPTx,
					"errors", snap.Errors,
				)
			case <-ctx.Done():
				return
			}
		}
	}()
}
