package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/metrics"
	"github.com/sbgstream/sbgstream/internal/server"
	redissink "github.com/sbgstream/sbgstream/internal/sink/redis"
)

// version identifies this build; overridden at link time with
// -ldflags="-X main.version=...".
var version = "dev"

func main() {
	cfg, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("sbgstreamd %s\n", version)
		return
	}
	if cfg == nil {
		os.Exit(2)
	}
	l := setupLogger(cfg.logFormat, cfg.logLevel)
	h := initHub(cfg, l)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup
	startMetricsLogger(ctx, cfg.logMetricsEvery, l, &wg)

	var publish func(messages.Message)
	var redisSink *redissink.Sink
	if cfg.redisAddr != "" {
		sink, rerr := redissink.New(cfg.redisAddr, cfg.redisPass, cfg.redisDB)
		if rerr != nil {
			l.Error("redis_init_error", "error", rerr)
			return
		}
		redisSink = sink
		publish = sink.Publish
		l.Info("redis_enabled", "addr", cfg.redisAddr, "db", cfg.redisDB)
	}

	sendFunc, ingestCleanup, ierr := initIngest(ctx, cfg, h, publish, l, &wg)
	if ierr != nil {
		l.Error("ingest_init_error", "error", ierr)
		return
	}

	srv := server.NewServer(
		server.WithHub(h),
		server.WithSend(sendFunc),
		server.WithLogger(l),
		server.WithMaxClients(cfg.maxClients),
		server.WithHandshakeTimeout(cfg.handshakeTO),
		server.WithReadDeadline(cfg.clientReadTO),
	)
	srv.SetListenAddr(cfg.listenAddr)
	go func() {
		if err := srv.Serve(ctx); err != nil {
			l.Error("tcp_server_error", "error", err)
			cancel()
		}
	}()

	// Start mDNS advertisement once the listener is ready.
	go func() {
		if !cfg.mdnsEnable {
			return
		}
		select {
		case <-srv.Ready():
		case <-ctx.Done():
			return
		}
		addr := srv.Addr()
		var portNum int
		if _, p, err := net.SplitHostPort(addr); err == nil {
			if pn, perr := strconv.Atoi(p); perr == nil {
				portNum = pn
			}
		}
		if portNum == 0 {
			lastColon := strings.LastIndex(addr, ":")
			if lastColon >= 0 {
				if pn, perr := strconv.Atoi(addr[lastColon+1:]); perr == nil {
					portNum = pn
				}
			}
		}
		cleanupMDNS, err := startMDNS(ctx, cfg, portNum)
		if err != nil {
			l.Warn("mdns_start_failed", "error", err)
			return
		}
		l.Info("mdns_started", "service", mdnsServiceType, "name", cfg.mdnsName, "port", portNum)
		go func() { <-ctx.Done(); cleanupMDNS() }()
	}()

	metrics.SetReadinessFunc(func() bool {
		select {
		case <-srv.Ready():
		default:
			return false
		}
		return ctx.Err() == nil
	})
	if cfg.metricsAddr != "" {
		metrics.InitBuildInfo(version)
		srvHTTP := metrics.StartHTTP(cfg.metricsAddr)
		defer func() { _ = srvHTTP.Shutdown(context.Background()) }()
	}

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigCh
	l.Info("shutdown_signal", "signal", s.String())
	cancel()
	ingestCleanup()
	if redisSink != nil {
		_ = redisSink.Close()
	}
	_ = srv.Shutdown(context.Background())
	wg.Wait()
}
