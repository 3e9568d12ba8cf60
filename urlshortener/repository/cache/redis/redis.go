package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/url-shortener/domain"
	redisKit "github.com/superj80820/url-shortener/kit/redis"
)

const linkKeyPrefix = "url:"

type linkCacheRepo struct {
	cache *redisKit.Cache
	ttl   time.Duration
}

type Option func(*linkCacheRepo)

func WithTTL(ttl time.Duration) Option {
	return func(l *linkCacheRepo) {
		l.ttl = ttl
	}
}

func CreateLinkCacheRepo(cache *redisKit.Cache, options ...Option) domain.LinkCacheRepo {
	l := &linkCacheRepo{
		cache: cache,
		ttl:   domain.LinkCacheTTL,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func linkKey(code string) string {
	return linkKeyPrefix + code
}

func (l *linkCacheRepo) Get(ctx context.Context, code string) (string, bool, error) {
	target, exists, err := l.cache.Get(ctx, linkKey(code))
	if err != nil {
		return "", false, errors.Wrap(err, "get link cache failed")
	}
	return target, exists, nil
}

func (l *linkCacheRepo) Set(ctx context.Context, code, target string) error {
	if err := l.cache.Set(ctx, linkKey(code), target, l.ttl); err != nil {
		return errors.Wrap(err, "set link cache failed")
	}
	return nil
}

func (l *linkCacheRepo) Ping(ctx context.Context) error {
	return l.cache.Ping(ctx)
}
