package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "mediaproc:asr:"
	redisDialTimeout = 5 * time.Second
	redisOpTimeout   = 2 * time.Second
)

func init() {
	Register("redis", newRedisStore)
}

// redisStore keeps one string key per entry and relies on key expiry for TTL.
// Size is enforced by the server's maxmemory policy, not by the store.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

func newRedisStore(opts Options) (Store, error) {
	if opts.RedisAddress == "" {
		return nil, errors.New("redis cache requires an address")
	}
	client := redis.NewClient(&redis.Options{
		Addr:        opts.RedisAddress,
		Password:    opts.RedisPassword,
		DB:          opts.RedisDB,
		DialTimeout: redisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisStore{client: client, ttl: opts.TTL, logger: opts.Logger}, nil
}

func (r *redisStore) report(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.report("redis cache get failed", err)
		}
		return nil, false
	}
	return val, true
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		r.report("redis cache set failed", err)
	}
}

func (r *redisStore) Len(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	count := 0
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.report("redis cache scan failed", err)
	}
	return count
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
