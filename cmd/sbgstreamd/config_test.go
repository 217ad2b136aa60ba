package main

import (
	"testing"
	"time"
)

func baseConfig() *appConfig {
	return &appConfig{
		device:       "/dev/null",
		baud:         115200,
		listenAddr:   ":20000",
		readTO:       10 * time.Millisecond,
		logFormat:    "text",
		logLevel:     "info",
		hubBuffer:    8,
		hubPolicy:    "drop",
		backend:      "serial",
		maxClients:   0,
		handshakeTO:  time.Second,
		clientReadTO: time.Second,
		redisDB:      0,
	}
}

func TestConfigValidate_OK(t *testing.T) {
	if err := baseConfig().validate(); err != nil {
		t.Fatalf("expected ok got %v", err)
	}
}

func TestConfigValidate_FileBackendRequiresPath(t *testing.T) {
	c := baseConfig()
	c.backend = "file"
	if err := c.validate(); err == nil {
		t.Fatalf("expected error for file backend without --file")
	}
	c.filePath = "/tmp/recording.bin"
	if err := c.validate(); err != nil {
		t.Fatalf("expected ok once file set, got %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*appConfig)
	}{
		{"badFormat", func(c *appConfig) { c.logFormat = "xx" }},
		{"badLevel", func(c *appConfig) { c.logLevel = "nope" }},
		{"badBackend", func(c *appConfig) { c.backend = "x" }},
		{"badPolicy", func(c *appConfig) { c.hubPolicy = "x" }},
		{"badHubBuf", func(c *appConfig) { c.hubBuffer = 0 }},
		{"badBaud", func(c *appConfig) { c.baud = 0 }},
		{"badReadTO", func(c *appConfig) { c.readTO = 0 }},
		{"badHandshakeTO", func(c *appConfig) { c.handshakeTO = 0 }},
		{"badClientReadTO", func(c *appConfig) { c.clientReadTO = 0 }},
		{"badMaxClients", func(c *appConfig) { c.maxClients = -1 }},
		{"badRedisDB", func(c *appConfig) { c.redisDB = -1 }},
	}
	for _, tc := range tests {
		base := baseConfig()
		tc.mod(base)
		if err := base.validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
