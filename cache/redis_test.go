package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, config Config) (*miniredis.Miniredis, *RedisResultCache) {
	t.Helper()
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(m.Close)

	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return m, NewRedisResultCache(rdb, config)
}

func TestRedisResultCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	m, c := newTestRedis(t, Config{Prefix: "test:"})

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", []byte(`{"verdict":"proven"}`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !m.Exists("test:k") {
		t.Error("Expected prefixed key in redis")
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != `{"verdict":"proven"}` {
		t.Errorf("Get() = %s", got)
	}

	if err := c.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Expected miss after Invalidate")
	}
}

func TestRedisResultCache_TTL(t *testing.T) {
	ctx := context.Background()
	m, c := newTestRedis(t, Config{TTL: time.Minute, Prefix: "test:"})

	c.Set(ctx, "k", []byte("v"))
	if ttl := m.TTL("test:k"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	m.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Expected miss after expiry")
	}
}

func TestRedisResultCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	m, c := newTestRedis(t, DefaultConfig())
	m.Close()

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("Expected error when redis is unavailable")
	}
}

func TestNewRedisResultCacheFromAddr(t *testing.T) {
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer m.Close()

	c, err := NewRedisResultCacheFromAddr(context.Background(), m.Addr(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewRedisResultCacheFromAddr() error: %v", err)
	}
	defer c.Close()
}
