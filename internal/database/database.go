package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"songvault/config"
	"songvault/pkg/logger"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type CacheClient valkey.Client

type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
	Events  CacheClient
}

type DB struct {
	SQL   *gorm.DB
	Cache Cache
	log   logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	if err := db.initializeDB(config); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

// NewFromGorm wraps an already opened connection without any cache clients.
// Repositories fall back to the database whenever a cache client is missing.
func NewFromGorm(sql *gorm.DB) DB {
	return DB{SQL: sql, log: logger.New("database")}
}

func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormLogger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
			gormLogger.Config{
				SlowThreshold:             2 * time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				ParameterizedQueries:      true,
			},
		),
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: false,
		SkipDefaultTransaction:                   true,
	}
}

func (s *DB) initializeDB(config config.Config) error {
	log := s.log.Function("initializeDB")

	if config.DatabaseHost == "" {
		return log.Error("database host is empty")
	}
	if config.DatabaseName == "" {
		return log.Error("database name is empty")
	}
	if config.DatabaseUser == "" {
		return log.Error("database user is empty")
	}

	log.Info(
		"Connecting to PostgreSQL",
		"host", config.DatabaseHost,
		"port", config.DatabasePort,
		"database", config.DatabaseName,
	)
	db, err := gorm.Open(postgres.Open(DSN(config)), GormConfig())
	if err != nil {
		return log.Err("failed to open PostgreSQL database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping PostgreSQL database through GORM", err)
	}

	log.Info("Successfully connected to PostgreSQL with GORM")
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

// DSN builds the libpq connection string shared by gorm and sql-migrate
func DSN(config config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseName,
	)
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	for _, client := range []CacheClient{s.Cache.General, s.Cache.Session, s.Cache.User, s.Cache.Events} {
		if client != nil {
			client.Close()
		}
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

func (s *DB) FlushAllCaches() error {
	log := s.log.Function("FlushAllCaches")
	log.Info("Flushing all cache databases")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheClients := []struct {
		client CacheClient
		name   string
	}{
		{s.Cache.General, "General"},
		{s.Cache.Session, "Session"},
		{s.Cache.User, "User"},
		{s.Cache.Events, "Events"},
	}

	for _, cache := range cacheClients {
		if cache.client == nil {
			continue
		}
		if err := cache.client.Do(ctx, cache.client.B().Flushdb().Build()).Error(); err != nil {
			return log.Err("Failed to flush cache database", err, "cache", cache.name)
		}
		log.Info("Successfully flushed cache database", "cache", cache.name)
	}

	return nil
}
