package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis tests run only when REDIS_ADDRESS points at a disposable server; they use DB 15.
func newTestRedis(t *testing.T, ttl time.Duration) Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis tests: set REDIS_ADDRESS to enable")
	}

	admin := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := admin.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test DB: %v", err)
	}
	_ = admin.Close()

	s, err := New("redis", Options{Size: 100, TTL: ttl, RedisAddress: addr, RedisDB: 15})
	if err != nil {
		t.Fatalf("New redis store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStore_GetSetLen(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t, time.Minute)

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatal("expected miss")
	}
	s.Set(ctx, "a", []byte("srt-a"))
	s.Set(ctx, "b", []byte("srt-b"))

	if val, ok := s.Get(ctx, "a"); !ok || string(val) != "srt-a" {
		t.Errorf("Get(a) = %q, %v", val, ok)
	}
	if n := s.Len(ctx); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t, 100*time.Millisecond)

	s.Set(ctx, "short", []byte("x"))
	time.Sleep(300 * time.Millisecond)
	if _, ok := s.Get(ctx, "short"); ok {
		t.Error("entry should have expired")
	}
}
