package main

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvOverrides_Basic(t *testing.T) {
	base := &appConfig{
		device:          "/dev/null",
		baud:            115200,
		listenAddr:      ":20000",
		readTO:          50 * time.Millisecond,
		logFormat:       "text",
		logLevel:        "info",
		metricsAddr:     "",
		hubBuffer:       512,
		hubPolicy:       "drop",
		backend:         "serial",
		maxClients:      0,
		handshakeTO:     3 * time.Second,
		clientReadTO:    60 * time.Second,
		logMetricsEvery: 0,
		mdnsEnable:      false,
		mdnsName:        "",
	}

	os.Setenv("SBGSTREAMD_BAUD", "230400")
	os.Setenv("SBGSTREAMD_MDNS_ENABLE", "true")
	os.Setenv("SBGSTREAMD_READ_TIMEOUT", "100ms")
	os.Setenv("SBGSTREAMD_LOG_METRICS_INTERVAL", "5s")
	os.Setenv("SBGSTREAMD_BACKEND", "udp")
	t.Cleanup(func() {
		os.Unsetenv("SBGSTREAMD_BAUD")
		os.Unsetenv("SBGSTREAMD_MDNS_ENABLE")
		os.Unsetenv("SBGSTREAMD_READ_TIMEOUT")
		os.Unsetenv("SBGSTREAMD_LOG_METRICS_INTERVAL")
		os.Unsetenv("SBGSTREAMD_BACKEND")
	})
	if err := applyEnvOverrides(base, map[string]struct{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base.baud != 230400 {
		t.Fatalf("expected baud override, got %d", base.baud)
	}
	if !base.mdnsEnable {
		t.Fatalf("expected mdnsEnable true")
	}
	if base.readTO != 100*time.Millisecond {
		t.Fatalf("expected readTO 100ms got %v", base.readTO)
	}
	if base.logMetricsEvery != 5*time.Second {
		t.Fatalf("expected logMetricsEvery 5s got %v", base.logMetricsEvery)
	}
	if base.backend != "udp" {
		t.Fatalf("expected backend udp got %q", base.backend)
	}
}

func TestApplyEnvOverrides_FlagPrecedence(t *testing.T) {
	base := &appConfig{baud: 115200}
	os.Setenv("SBGSTREAMD_BAUD", "230400")
	t.Cleanup(func() { os.Unsetenv("SBGSTREAMD_BAUD") })
	if err := applyEnvOverrides(base, map[string]struct{}{"baud": {}}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if base.baud != 115200 {
		t.Fatalf("expected baud unchanged 115200 got %d", base.baud)
	}
}

func TestApplyEnvOverrides_BadInt(t *testing.T) {
	base := &appConfig{hubBuffer: 512}
	os.Setenv("SBGSTREAMD_HUB_BUFFER", "notint")
	t.Cleanup(func() { os.Unsetenv("SBGSTREAMD_HUB_BUFFER") })
	if err := applyEnvOverrides(base, map[string]struct{}{}); err == nil {
		t.Fatalf("expected error for bad integer")
	}
}

func TestApplyEnvOverrides_RedisAddr(t *testing.T) {
	base := &appConfig{}
	os.Setenv("SBGSTREAMD_REDIS_ADDR", "127.0.0.1:6379")
	t.Cleanup(func() { os.Unsetenv("SBGSTREAMD_REDIS_ADDR") })
	if err := applyEnvOverrides(base, map[string]struct{}{}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if base.redisAddr != "127.0.0.1:6379" {
		t.Fatalf("expected redisAddr override, got %q", base.redisAddr)
	}
}
