package cache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix    = ":generate_lock"
	unlockTimeout = 2 * time.Second
)

// RedisMazeCache stores serialized maze records in Redis with a TTL.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (i.MazeCache, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if ttlSeconds <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}

	cache := &RedisMazeCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Load returns the value stored under key, or i.ErrCacheMiss.
func (c *RedisMazeCache) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, i.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Store saves value under key with the cache TTL.
func (c *RedisMazeCache) Store(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// WithLock runs fn while holding the distributed lock for key.
func (c *RedisMazeCache) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	mutex := c.locker.NewMutex(key + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		// Release even when the request context is already done.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
		defer cancel()
		_, _ = mutex.UnlockContext(unlockCtx)
	}()

	return fn(ctx)
}
