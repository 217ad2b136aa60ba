// Package redis provides a thin best-effort publisher that fans decoded
// telemetry messages out to per-kind Redis channels, for consumers that
// want a pub/sub feed instead of (or alongside) the TCP relay.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/metrics"
)

// publisher is the narrow surface Sink needs from a Redis client, small
// enough to fake in tests without a running Redis server.
type publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
	Close() error
}

// goredisPublisher adapts *goredis.Client to publisher.
type goredisPublisher struct{ rdb *goredis.Client }

func (g goredisPublisher) Publish(ctx context.Context, channel string, payload any) error {
	return g.rdb.Publish(ctx, channel, payload).Err()
}
func (g goredisPublisher) Close() error { return g.rdb.Close() }

// Sink publishes decoded messages to per-kind Redis channels, counting (but
// never surfacing) failures so a down Redis instance never blocks the relay
// or device command channel.
type Sink struct {
	ctx context.Context
	pub publisher
}

// New dials addr and verifies connectivity with a ping.
func New(addr, password string, db int) (*Sink, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Sink{ctx: ctx, pub: goredisPublisher{rdb: rdb}}, nil
}

// Close releases the underlying connection pool.
func (s *Sink) Close() error { return s.pub.Close() }

// channelFor maps a message kind to its Redis pub/sub channel name.
func channelFor(m messages.Message) string {
	return fmt.Sprintf("sbgstream:%s", m.Kind)
}

// Publish serializes m as JSON and publishes it to the channel for its kind.
func (s *Sink) Publish(m messages.Message) {
	payload, err := json.Marshal(m)
	if err != nil {
		metrics.IncRedisPublishFailure()
		return
	}
	if err := s.pub.Publish(s.ctx, channelFor(m), payload); err != nil {
		metrics.IncRedisPublishFailure()
	}
}
