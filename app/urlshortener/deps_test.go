package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superj80820/url-shortener/config"
	utilKit "github.com/superj80820/url-shortener/kit/util"
)

func TestSetupNode(t *testing.T) {
	require.Nil(t, setupNode(&config.Config{SnowflakeNodeID: 9}))

	id := utilKit.GetSnowflakeIDInt64()
	assert.Equal(t, int64(9), (id>>12)&1023)

	assert.Error(t, setupNode(&config.Config{SnowflakeNodeID: 10}))
}

func TestCreateDB(t *testing.T) {
	db, err := createDB(&config.Config{
		DatabaseDriver:    config.DatabaseDriverSQLite,
		DatabaseURL:       "file::memory:",
		DBMaxOpenConns:    1,
		DBMaxIdleConns:    1,
		DBConnMaxLifetime: time.Hour,
	})
	require.Nil(t, err)
	defer db.Close()
	assert.Nil(t, db.Ping(context.Background()))

	_, err = createDB(&config.Config{DatabaseDriver: "oracle"})
	assert.Error(t, err)
}

func TestCreateCacheWithoutRedis(t *testing.T) {
	cache, err := createCache(&config.Config{
		RedisHost:        "127.0.0.1",
		RedisPort:        1,
		RedisPoolSize:    1,
		RedisDialTimeout: 100 * time.Millisecond,
	})
	require.Nil(t, err)
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, cache.Ping(ctx))
}
