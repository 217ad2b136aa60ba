package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type appConfig struct {
	backend         string
	device          string
	baud            int
	udpAddr         string
	filePath        string
	readTO          time.Duration
	listenAddr      string
	logFormat       string
	logLevel        string
	metricsAddr     string
	hubBuffer       int
	hubPolicy       string
	logMetricsEvery time.Duration
	maxClients      int
	handshakeTO     time.Duration
	clientReadTO    time.Duration
	mdnsEnable      bool
	mdnsName        string
	redisAddr       string
	redisPass       string
	redisDB         int
}

func parseFlags() (*appConfig, bool) {
	cfg := &appConfig{}
	backend := flag.String("backend", "serial", "Ingestion backend: serial|udp|file")
	device := flag.String("device", "/dev/ttyUSB0", "Serial device path (when --backend=serial)")
	baud := flag.Int("baud", 115200, "Serial baud rate (when --backend=serial)")
	udpAddr := flag.String("udp-addr", ":5000", "UDP listen address (when --backend=udp)")
	filePath := flag.String("file", "", "Path to a recorded binary log to replay (when --backend=file)")
	readTO := flag.Duration("read-timeout", 50*time.Millisecond, "Ingestion source read timeout")
	listen := flag.String("listen", ":20000", "TCP relay listen address")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	metricsAddr := flag.String("metrics-addr", "", "Metrics HTTP listen address (e.g., :9100); empty disables")
	hubBuf := flag.Int("hub-buffer", 512, "Per-client hub buffer (messages)")
	hubPolicy := flag.String("hub-policy", "drop", "Backpressure policy: drop|kick")
	logMetricsEvery := flag.Duration("log-metrics-interval", 0, "If >0, periodically log metrics counters (for non-Prometheus setups)")
	maxClients := flag.Int("max-clients", 0, "Maximum simultaneous relay clients (0 = unlimited)")
	handshakeTO := flag.Duration("handshake-timeout", 3*time.Second, "Client handshake timeout")
	clientReadTO := flag.Duration("client-read-timeout", 60*time.Second, "Per-connection read deadline")
	mdnsEnable := flag.Bool("mdns-enable", false, "Enable mDNS/Avahi advertisement")
	mdnsName := flag.String("mdns-name", "", "mDNS instance name (default sbgstreamd-<hostname>)")
	redisAddr := flag.String("redis-addr", "", "Redis address (e.g., 127.0.0.1:6379); empty disables the Redis sink")
	redisPass := flag.String("redis-password", "", "Redis password")
	redisDB := flag.Int("redis-db", 0, "Redis database index")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	setFlags := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = struct{}{} })

	cfg.backend = *backend
	cfg.device = *device
	cfg.baud = *baud
	cfg.udpAddr = *udpAddr
	cfg.filePath = *filePath
	cfg.readTO = *readTO
	cfg.listenAddr = *listen
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.metricsAddr = *metricsAddr
	cfg.hubBuffer = *hubBuf
	cfg.hubPolicy = *hubPolicy
	cfg.logMetricsEvery = *logMetricsEvery
	cfg.maxClients = *maxClients
	cfg.handshakeTO = *handshakeTO
	cfg.clientReadTO = *clientReadTO
	cfg.mdnsEnable = *mdnsEnable
	cfg.mdnsName = *mdnsName
	cfg.redisAddr = *redisAddr
	cfg.redisPass = *redisPass
	cfg.redisDB = *redisDB

	if err := applyEnvOverrides(cfg, setFlags); err != nil {
		fmt.Printf("environment override error: %v\n", err)
		return nil, *showVersion
	}
	if err := cfg.validate(); err != nil {
		fmt.Printf("configuration error: %v\n", err)
		return nil, *showVersion
	}
	return cfg, *showVersion
}

// validate performs basic semantic validation of the parsed configuration.
// It does not attempt to open devices or listeners -- only checks
// values/ranges.
func (c *appConfig) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	switch c.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format: %s", c.logFormat)
	}
	switch c.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s", c.logLevel)
	}
	switch c.backend {
	case "serial", "udp", "file":
	default:
		return fmt.Errorf("invalid backend: %s", c.backend)
	}
	if c.backend == "file" && c.filePath == "" {
		return errors.New("--file is required when --backend=file")
	}
	switch c.hubPolicy {
	case "drop", "kick":
	default:
		return fmt.Errorf("invalid hub-policy: %s", c.hubPolicy)
	}
	if c.hubBuffer <= 0 {
		return fmt.Errorf("hub-buffer must be > 0 (got %d)", c.hubBuffer)
	}
	if c.baud <= 0 {
		return fmt.Errorf("baud must be > 0 (got %d)", c.baud)
	}
	if c.readTO <= 0 {
		return fmt.Errorf("read-timeout must be > 0")
	}
	if c.handshakeTO <= 0 {
		return fmt.Errorf("handshake-timeout must be > 0")
	}
	if c.clientReadTO <= 0 {
		return fmt.Errorf("client-read-timeout must be > 0")
	}
	if c.maxClients < 0 {
		return fmt.Errorf("max-clients must be >= 0")
	}
	if c.redisDB < 0 {
		return fmt.Errorf("redis-db must be >= 0")
	}
	return nil
}

// applyEnvOverrides maps SBGSTREAMD_* environment variables to config fields
// unless a corresponding flag was explicitly set (flag wins).
func applyEnvOverrides(c *appConfig, set map[string]struct{}) error {
	var firstErr error
	get := func(k string) (string, bool) { v, ok := os.LookupEnv(k); return strings.TrimSpace(v), ok }

	if _, ok := set["backend"]; !ok {
		if v, ok := get("SBGSTREAMD_BACKEND"); ok && v != "" {
			c.backend = v
		}
	}
	if _, ok := set["device"]; !ok {
		if v, ok := get("SBGSTREAMD_DEVICE"); ok && v != "" {
			c.device = v
		}
	}
	if _, ok := set["baud"]; !ok {
		if v, ok := get("SBGSTREAMD_BAUD"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.baud = n
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_BAUD: %w", err)
			}
		}
	}
	if _, ok := set["udp-addr"]; !ok {
		if v, ok := get("SBGSTREAMD_UDP_ADDR"); ok && v != "" {
			c.udpAddr = v
		}
	}
	if _, ok := set["file"]; !ok {
		if v, ok := get("SBGSTREAMD_FILE"); ok && v != "" {
			c.filePath = v
		}
	}
	if _, ok := set["read-timeout"]; !ok {
		if v, ok := get("SBGSTREAMD_READ_TIMEOUT"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				c.readTO = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_READ_TIMEOUT: %w", err)
			}
		}
	}
	if _, ok := set["listen"]; !ok {
		if v, ok := get("SBGSTREAMD_LISTEN"); ok && v != "" {
			c.listenAddr = v
		}
	}
	if _, ok := set["log-format"]; !ok {
		if v, ok := get("SBGSTREAMD_LOG_FORMAT"); ok && v != "" {
			c.logFormat = v
		}
	}
	if _, ok := set["log-level"]; !ok {
		if v, ok := get("SBGSTREAMD_LOG_LEVEL"); ok && v != "" {
			c.logLevel = v
		}
	}
	if _, ok := set["metrics-addr"]; !ok {
		if v, ok := get("SBGSTREAMD_METRICS"); ok {
			c.metricsAddr = v
		}
	}
	if _, ok := set["hub-buffer"]; !ok {
		if v, ok := get("SBGSTREAMD_HUB_BUFFER"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.hubBuffer = n
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_HUB_BUFFER: %w", err)
			}
		}
	}
	if _, ok := set["hub-policy"]; !ok {
		if v, ok := get("SBGSTREAMD_HUB_POLICY"); ok && v != "" {
			c.hubPolicy = v
		}
	}
	if _, ok := set["max-clients"]; !ok {
		if v, ok := get("SBGSTREAMD_MAX_CLIENTS"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				c.maxClients = n
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_MAX_CLIENTS: %w", err)
			}
		}
	}
	if _, ok := set["handshake-timeout"]; !ok {
		if v, ok := get("SBGSTREAMD_HANDSHAKE_TIMEOUT"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				c.handshakeTO = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_HANDSHAKE_TIMEOUT: %w", err)
			}
		}
	}
	if _, ok := set["client-read-timeout"]; !ok {
		if v, ok := get("SBGSTREAMD_CLIENT_READ_TIMEOUT"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				c.clientReadTO = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_CLIENT_READ_TIMEOUT: %w", err)
			}
		}
	}
	if _, ok := set["mdns-enable"]; !ok {
		if v, ok := get("SBGSTREAMD_MDNS_ENABLE"); ok && v != "" {
			switch strings.ToLower(v) {
			case "1", "true", "yes", "on":
				c.mdnsEnable = true
			case "0", "false", "no", "off":
				c.mdnsEnable = false
			}
		}
	}
	if _, ok := set["mdns-name"]; !ok {
		if v, ok := get("SBGSTREAMD_MDNS_NAME"); ok && v != "" {
			c.mdnsName = v
		}
	}
	if _, ok := set["log-metrics-interval"]; !ok {
		if v, ok := get("SBGSTREAMD_LOG_METRICS_INTERVAL"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				c.logMetricsEvery = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_LOG_METRICS_INTERVAL: %w", err)
			}
		}
	}
	if _, ok := set["redis-addr"]; !ok {
		if v, ok := get("SBGSTREAMD_REDIS_ADDR"); ok {
			c.redisAddr = v
		}
	}
	if _, ok := set["redis-password"]; !ok {
		if v, ok := get("SBGSTREAMD_REDIS_PASSWORD"); ok {
			c.redisPass = v
		}
	}
	if _, ok := set["redis-db"]; !ok {
		if v, ok := get("SBGSTREAMD_REDIS_DB"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				c.redisDB = n
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid SBGSTREAMD_REDIS_DB: %w", err)
			}
		}
	}
	return firstErr
}
