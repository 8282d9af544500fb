package database

import (
	"context"
	"fmt"
	"time"

	"songvault/config"
	"songvault/pkg/logger"

	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes, one per cache category
const (
	// GENERAL_CACHE_INDEX (DB 0) - catalog lists (genres, artists)
	GENERAL_CACHE_INDEX = iota

	// SESSION_CACHE_INDEX (DB 1) - token sessions; deleting one logs the user out
	SESSION_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - user records looked up on every authenticated request
	USER_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 3) - pub/sub for catalog change events
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Error("failed to initialize cache database: address or port is empty")
	}

	newClient := func(index int) (CacheClient, error) {
		return valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    index,
		})
	}

	var cacheDB Cache
	var err error

	if cacheDB.General, err = newClient(GENERAL_CACHE_INDEX); err != nil {
		return log.Err("failed to create general valkey client", err)
	}
	if cacheDB.Session, err = newClient(SESSION_CACHE_INDEX); err != nil {
		return log.Err("failed to create session valkey client", err)
	}
	if cacheDB.User, err = newClient(USER_CACHE_INDEX); err != nil {
		return log.Err("failed to create user valkey client", err)
	}
	if cacheDB.Events, err = newClient(EVENTS_CACHE_INDEX); err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache = cacheDB

	if config.DatabaseCacheReset != -1 {
		go clearCacheDB(config.DatabaseCacheReset, cacheDB)
	}

	return nil
}

func clearCacheDB(index int, cacheDB Cache) {
	log := logger.New("database").File("cache.database").Function("clearCacheDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var client CacheClient
	var dbName string

	switch index {
	case GENERAL_CACHE_INDEX:
		client, dbName = cacheDB.General, "General"
	case SESSION_CACHE_INDEX:
		client, dbName = cacheDB.Session, "Session"
	case USER_CACHE_INDEX:
		client, dbName = cacheDB.User, "User"
	case EVENTS_CACHE_INDEX:
		client, dbName = cacheDB.Events, "Events"
	default:
		log.Warn("Invalid cache database index", "index", index)
		return
	}

	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		log.Er("Failed to clear cache database", err, "index", index, "dbName", dbName)
		return
	}

	log.Info("Successfully cleared cache database", "index", index, "dbName", dbName)
}
