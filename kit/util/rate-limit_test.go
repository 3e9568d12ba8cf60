package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	redisKit "github.com/superj80820/url-shortener/kit/redis"
	testingRedisKit "github.com/superj80820/url-shortener/kit/testing/redis/container"
)

func TestCacheRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skip container test in short mode")
	}
	ctx := context.Background()

	redisContainer, err := testingRedisKit.CreateRedis(ctx)
	assert.Nil(t, err)
	defer redisContainer.Terminate(ctx)

	cache, err := redisKit.CreateCache(redisContainer.GetURI(), "", 0)
	assert.Nil(t, err)

	rateLimit := CreateCacheRateLimit(cache, 3, 60)
	for i := 1; i <= 3; i++ {
		pass, lastRequests, expiry, err := rateLimit.Pass(ctx, "10.0.0.1")
		assert.Nil(t, err)
		assert.True(t, pass)
		assert.Equal(t, 3-i, lastRequests)
		assert.LessOrEqual(t, expiry, 60)
	}

	pass, lastRequests, _, err := rateLimit.Pass(ctx, "10.0.0.1")
	assert.Nil(t, err)
	assert.False(t, pass)
	assert.Equal(t, 0, lastRequests)

	pass, _, _, err = rateLimit.Pass(ctx, "10.0.0.2")
	assert.Nil(t, err)
	assert.True(t, pass)
}
