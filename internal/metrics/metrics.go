// Package metrics exposes Prometheus counters/gauges for the telemetry
// pipeline (frame decoding, dispatch, session assembly, relay hub) plus a
// lightweight atomic-mirrored snapshot for non-Prometheus logging.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbgstream/sbgstream/internal/logging"
)

// Prometheus counters and gauges.
var (
	FramesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frames_decoded_total",
		Help: "Total protocol frames successfully validated by the reassembler.",
	})
	FrameCRCFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frame_crc_failures_total",
		Help: "Total candidate frames rejected due to CRC mismatch.",
	})
	FrameResyncs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frame_resyncs_total",
		Help: "Total single-byte resynchronizations performed after a malformed candidate frame.",
	})
	DispatchMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_unknown_message_total",
		Help: "Total frames whose (class, id) pair has no catalogue entry.",
	})
	SessionInfoCompletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_info_completions_total",
		Help: "Total session-information blobs fully reassembled.",
	})
	SessionInfoResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_info_resets_total",
		Help: "Total session-information reassembly resets due to unexpected page index.",
	})
	SourceRxBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "source_rx_bytes_total",
		Help: "Total bytes read from each ingestion source.",
	}, []string{"source"})
	HubDroppedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_dropped_messages_total",
		Help: "Total decoded messages dropped by the relay hub due to slow clients.",
	})
	HubKickedClients = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_kicked_clients_total",
		Help: "Total relay clients disconnected due to the kick backpressure policy.",
	})
	HubRejectedClients = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hub_rejected_clients_total",
		Help: "Total relay client connection attempts rejected (e.g. max-clients).",
	})
	HubActiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hub_active_clients",
		Help: "Current number of connected relay clients.",
	})
	HubBroadcastFanout = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hub_broadcast_fanout",
		Help: "Number of clients targeted in the most recent broadcast.",
	})
	HubQueueDepthMax = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hub_queue_depth_max",
		Help: "Deepest per-client outbound queue observed in the most recent broadcast.",
	})
	HubQueueDepthAvg = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hub_queue_depth_avg",
		Help: "Average per-client outbound queue depth observed in the most recent broadcast.",
	})
	RedisPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redis_publish_failures_total",
		Help: "Total failed best-effort publishes to the Redis sink.",
	})
	CommandsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commands_sent_total",
		Help: "Total outbound command frames successfully written to the device.",
	})
	RelayCommandsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_commands_received_total",
		Help: "Total command requests received from relay clients.",
	})
	RelayMessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_messages_sent_total",
		Help: "Total decoded telemetry messages written out to relay clients.",
	})
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build metadata (value is always 1).",
	}, []string{"version"})
	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "errors_total",
		Help: "Error counters by subsystem.",
	}, []string{"where"})

	readinessMu sync.RWMutex
	readinessFn func() bool
)

// Error label constants (stable label values to bound cardinality).
const (
	ErrTCPRead    = "tcp_read"
	ErrTCPWrite   = "tcp_write"
	ErrHandshake  = "handshake"
	ErrSourceRead = "source_read"
	ErrCommandTx  = "command_write"
	ErrRedis      = "redis_publish"
)

// StartHTTP serves Prometheus metrics at /metrics and a readiness probe at
// /ready.
func StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if IsReady() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready\n"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready\n"))
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		logging.L().Info("metrics_listen", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.L().Error("metrics_http_error", "error", err)
		}
	}()
	return srv
}

// Local mirrored counters, cheap to read for periodic logging without
// touching the Prometheus registry.
var (
	localFramesDecoded      uint64
	localCRCFailures        uint64
	localResyncs            uint64
	localDispatchMisses     uint64
	localSessionCompletions uint64
	localHubDrop            uint64
	localHubKick            uint64
	localHubReject          uint64
	localHubClients         uint64
	localTCPRx              uint64
	localTCPTx              uint64
	localErrors             uint64
)

// Snapshot is a cheap copy of local counters.
type Snapshot struct {
	FramesDecoded      uint64
	CRCFailures        uint64
	Resyncs            uint64
	DispatchMisses     uint64
	SessionCompletions uint64
	HubDrops           uint64
	HubKicks           uint64
	HubRejects         uint64
	HubClients         uint64
	TCPRx              uint64
	TCPTx              uint64
	Errors             uint64
}

// Snap returns the current local snapshot.
func Snap() Snapshot {
	return Snapshot{
		FramesDecoded:      atomic.LoadUint64(&localFramesDecoded),
		CRCFailures:        atomic.LoadUint64(&localCRCFailures),
		Resyncs:            atomic.LoadUint64(&localResyncs),
		DispatchMisses:     atomic.LoadUint64(&localDispatchMisses),
		SessionCompletions: atomic.LoadUint64(&localSessionCompletions),
		HubDrops:           atomic.LoadUint64(&localHubDrop),
		HubKicks:           atomic.LoadUint64(&localHubKick),
		HubRejects:         atomic.LoadUint64(&localHubReject),
		HubClients:         atomic.LoadUint64(&localHubClients),
		TCPRx:              atomic.LoadUint64(&localTCPRx),
		TCPTx:              atomic.LoadUint64(&localTCPTx),
		Errors:             atomic.LoadUint64(&localErrors),
	}
}

// IncFramesDecoded records one successfully validated frame.
func IncFramesDecoded() {
	FramesDecoded.Inc()
	atomic.AddUint64(&localFramesDecoded, 1)
}

// IncCRCFailure records one candidate frame rejected by CRC mismatch.
func IncCRCFailure() {
	FrameCRCFailures.Inc()
	atomic.AddUint64(&localCRCFailures, 1)
}

// IncFrameResync records one single-byte resynchronization.
func IncFrameResync() {
	FrameResyncs.Inc()
	atomic.AddUint64(&localResyncs, 1)
}

// IncDispatchMiss records one frame with no catalogue entry.
func IncDispatchMiss() {
	DispatchMisses.Inc()
	atomic.AddUint64(&localDispatchMisses, 1)
}

// IncSessionInfoCompletion records one fully reassembled session-info blob.
func IncSessionInfoCompletion() {
	SessionInfoCompletions.Inc()
	atomic.AddUint64(&localSessionCompletions, 1)
}

// IncSessionInfoReset records one session-info reassembly reset.
func IncSessionInfoReset() {
	SessionInfoResets.Inc()
}

// AddSourceRxBytes records n bytes read from the named ingestion source.
func AddSourceRxBytes(source string, n int) {
	SourceRxBytes.WithLabelValues(source).Add(float64(n))
}

// IncHubDrop records one message dropped by the relay hub.
func IncHubDrop() {
	HubDroppedMessages.Inc()
	atomic.AddUint64(&localHubDrop, 1)
}

// IncHubKick records one relay client disconnected by the kick policy.
func IncHubKick() {
	HubKickedClients.Inc()
	atomic.AddUint64(&localHubKick, 1)
}

// IncHubReject records one rejected relay client connection attempt.
func IncHubReject() {
	HubRejectedClients.Inc()
	atomic.AddUint64(&localHubReject, 1)
}

// SetHubClients records the current relay client count.
func SetHubClients(n int) {
	HubActiveClients.Set(float64(n))
	atomic.StoreUint64(&localHubClients, uint64(n))
}

// SetBroadcastFanout records the client count targeted by the last broadcast.
func SetBroadcastFanout(n int) {
	HubBroadcastFanout.Set(float64(n))
}

// SetQueueDepth records a snapshot of max and average per-client outbound
// queue depth, sampled once per broadcast.
func SetQueueDepth(max, avg int) {
	HubQueueDepthMax.Set(float64(max))
	HubQueueDepthAvg.Set(float64(avg))
}

// IncError records one error under the given subsystem label.
func IncError(label string) {
	Errors.WithLabelValues(label).Inc()
	atomic.AddUint64(&localErrors, 1)
}

// IncRedisPublishFailure records one failed Redis publish attempt.
func IncRedisPublishFailure() {
	RedisPublishFailures.Inc()
	IncError(ErrRedis)
}

// IncCommandSent records one command frame successfully written to the
// device.
func IncCommandSent() {
	CommandsSent.Inc()
}

// IncTCPRx records one command request received from a relay client.
func IncTCPRx() {
	RelayCommandsReceived.Inc()
	atomic.AddUint64(&localTCPRx, 1)
}

// AddTCPTx records n decoded telemetry messages written out to relay clients.
func AddTCPTx(n int) {
	RelayMessagesSent.Add(float64(n))
	atomic.AddUint64(&localTCPTx, uint64(n))
}

// InitBuildInfo sets the build info gauge. Called once at startup.
func InitBuildInfo(version string) {
	BuildInfo.WithLabelValues(version).Set(1)
	for _, lbl := range []string{ErrTCPRead, ErrTCPWrite, ErrHandshake, ErrSourceRead, ErrCommandTx, ErrRedis} {
		Errors.WithLabelValues(lbl).Add(0)
	}
}

// SetReadinessFunc registers a function used by /ready and IsReady.
func SetReadinessFunc(fn func() bool) { readinessMu.Lock(); readinessFn = fn; readinessMu.Unlock() }

// IsReady invokes the registered readiness function if present.
func IsReady() bool {
	readinessMu.RLock()
	fn := readinessFn
	readinessMu.RUnlock()
	if fn == nil {
		return true
	}
	return fn()
}

// Ready is a concise alias used at call sites.
func Ready() bool { return IsReady() }
