package orm

import (
	"context"
	"time"

	goMysql "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	ErrDuplicatedKey  = gorm.ErrDuplicatedKey
)

type postgresConfig struct {
	dns string
}

type mySQLConfig struct {
	dns string
}

type sqliteConfig struct {
	fileName string
}

type poolConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

type DB struct {
	gormClient *gorm.DB

	dbType dbType

	mySQLConfig    *mySQLConfig
	sqliteConfig   *sqliteConfig
	postgresConfig *postgresConfig
	poolConfig     poolConfig
}

type TX = gorm.DB

type dbType int

const (
	dbTypeNoop dbType = iota
	dbTypeMySQL
	dbTypeSQLite
	dbTypePostgres
)

type Option func(*DB)

func UseMySQL(dns string) Option {
	return func(db *DB) {
		db.dbType = dbTypeMySQL
		db.mySQLConfig = &mySQLConfig{
			dns: dns,
		}
	}
}

func UsePostgres(dns string) Option {
	return func(db *DB) {
		db.dbType = dbTypePostgres
		db.postgresConfig = &postgresConfig{
			dns: dns,
		}
	}
}

func UseSQLite(fileName string) Option {
	return func(db *DB) {
		db.dbType = dbTypeSQLite
		db.sqliteConfig = &sqliteConfig{
			fileName: fileName,
		}
	}
}

func WithMaxOpenConns(maxOpenConns int) Option {
	return func(db *DB) {
		db.poolConfig.maxOpenConns = maxOpenConns
	}
}

func WithMaxIdleConns(maxIdleConns int) Option {
	return func(db *DB) {
		db.poolConfig.maxIdleConns = maxIdleConns
	}
}

func WithConnMaxLifetime(connMaxLifetime time.Duration) Option {
	return func(db *DB) {
		db.poolConfig.connMaxLifetime = connMaxLifetime
	}
}

func CreateDB(useDB Option, options ...Option) (*DB, error) {
	var gormDB DB

	useDB(&gormDB)
	for _, option := range options {
		option(&gormDB)
	}

	var dialector gorm.Dialector
	switch gormDB.dbType {
	case dbTypeMySQL:
		dialector = mysql.Open(gormDB.mySQLConfig.dns)
	case dbTypeSQLite:
		dialector = sqlite.Open(gormDB.sqliteConfig.fileName)
	case dbTypePostgres:
		dialector = postgres.Open(gormDB.postgresConfig.dns)
	default:
		return nil, errors.New("unknown db type")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect db failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get core db failed")
	}
	if gormDB.poolConfig.maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(gormDB.poolConfig.maxOpenConns)
	}
	if gormDB.poolConfig.maxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(gormDB.poolConfig.maxIdleConns)
	}
	if gormDB.poolConfig.connMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(gormDB.poolConfig.connMaxLifetime)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping core db failed")
	}

	gormDB.gormClient = db

	return &gormDB, nil
}

func (db *DB) WithContext(ctx context.Context) *TX {
	return db.gormClient.WithContext(ctx)
}

func (db *DB) AutoMigrate(dst ...interface{}) error {
	if err := db.gormClient.AutoMigrate(dst...); err != nil {
		return errors.Wrap(err, "auto migrate failed")
	}
	return nil
}

// Ping checks a pooled connection is still alive.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gormClient.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping core db failed")
	}
	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.gormClient.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	return sqlDB.Close()
}

func ConvertMySQLErr(err error) (error, bool) {
	var mysqlErr *goMysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicatedKey, true
	}
	return nil, false
}

// IsDuplicatedKey reports a unique constraint violation from any supported driver.
func IsDuplicatedKey(err error) bool {
	if errors.Is(err, ErrDuplicatedKey) {
		return true
	}
	_, ok := ConvertMySQLErr(err)
	return ok
}
