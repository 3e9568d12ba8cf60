package main

import (
	"github.com/pkg/errors"
	"github.com/superj80820/url-shortener/config"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	ormKit "github.com/superj80820/url-shortener/kit/orm"
	redisKit "github.com/superj80820/url-shortener/kit/redis"
	utilKit "github.com/superj80820/url-shortener/kit/util"
)

func createLogger(cfg *config.Config, options ...loggerKit.Option) (*loggerKit.Logger, error) {
	logLevel := loggerKit.InfoLevel
	if cfg.IsDevelopment() {
		logLevel = loggerKit.DebugLevel
	}
	return loggerKit.NewLogger(cfg.LogPath, logLevel, options...)
}

func createDB(cfg *config.Config) (*ormKit.DB, error) {
	var useDB ormKit.Option
	switch cfg.DatabaseDriver {
	case config.DatabaseDriverPostgres:
		useDB = ormKit.UsePostgres(cfg.DatabaseURL)
	case config.DatabaseDriverMySQL:
		useDB = ormKit.UseMySQL(cfg.DatabaseURL)
	case config.DatabaseDriverSQLite:
		useDB = ormKit.UseSQLite(cfg.DatabaseURL)
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}
	return ormKit.CreateDB(
		useDB,
		ormKit.WithMaxOpenConns(cfg.DBMaxOpenConns),
		ormKit.WithMaxIdleConns(cfg.DBMaxIdleConns),
		ormKit.WithConnMaxLifetime(cfg.DBConnMaxLifetime),
	)
}

// createCache does not ping, the service starts degraded while redis is down.
func createCache(cfg *config.Config) (*redisKit.Cache, error) {
	return redisKit.CreateCache(
		cfg.RedisAddress(),
		cfg.RedisPassword,
		cfg.RedisDB,
		redisKit.WithPoolSize(cfg.RedisPoolSize),
		redisKit.WithDialTimeout(cfg.RedisDialTimeout),
		redisKit.SkipPing,
	)
}

// setupNode pins the snowflake node of this replica. It runs before anything
// generates an id, request ids included.
func setupNode(cfg *config.Config) error {
	return utilKit.SetSnowflakeNodeID(cfg.SnowflakeNodeID)
}
