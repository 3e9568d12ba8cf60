package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goRedis "github.com/redis/go-redis/v9"
)

type Cache struct {
	redisClient *goRedis.Client
}

type Cmd struct {
	*goRedis.Cmd
}

type cacheConfig struct {
	poolSize    int
	dialTimeout time.Duration
	skipPing    bool
}

type Option func(*cacheConfig)

func WithPoolSize(poolSize int) Option {
	return func(c *cacheConfig) {
		c.poolSize = poolSize
	}
}

func WithDialTimeout(dialTimeout time.Duration) Option {
	return func(c *cacheConfig) {
		c.dialTimeout = dialTimeout
	}
}

// SkipPing lets the process start while redis is still unreachable.
func SkipPing(c *cacheConfig) {
	c.skipPing = true
}

func (cache *Cache) RunLua(ctx context.Context, script string, keys []string, args ...interface{}) *Cmd {
	luaScript := goRedis.NewScript(script)
	cmd := Cmd{luaScript.Run(ctx, cache.redisClient, keys, args...)}
	return &cmd
}

func (cache *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := cache.redisClient.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.Wrap(err, "set redis failed")
	}
	return nil
}

func (cache *Cache) Get(ctx context.Context, key string) (val string, exists bool, err error) {
	val, err = cache.redisClient.Get(ctx, key).Result()
	if err == goRedis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "get redis failed")
	}
	return val, true, nil
}

func (cache *Cache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := cache.redisClient.TTL(ctx, key).Result()
	if err != nil {
		return 0, errors.Wrap(err, "ttl redis failed")
	}
	return ttl, nil
}

func (cache *Cache) Ping(ctx context.Context) error {
	if err := cache.redisClient.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "ping redis failed")
	}
	return nil
}

func (cache *Cache) Close() error {
	return cache.redisClient.Close()
}

func CreateCache(address, password string, dbSelect int, options ...Option) (*Cache, error) {
	config := cacheConfig{
		poolSize:    50,
		dialTimeout: 5 * time.Second,
	}
	for _, option := range options {
		option(&config)
	}

	redisClient := goRedis.NewClient(&goRedis.Options{
		Addr:        address,
		Password:    password,
		DB:          dbSelect,
		PoolSize:    config.poolSize,
		DialTimeout: config.dialTimeout,
	})
	if !config.skipPing {
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return nil, errors.Wrap(err, "redis connect failed")
		}
	}
	return &Cache{redisClient: redisClient}, nil
}
