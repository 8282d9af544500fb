package repositories

import (
	"context"
	"errors"

	"songvault/internal/constants"
	"songvault/internal/database"
	"songvault/pkg/logger"
)

// catalogList reads a cached list, falling back to load on a miss. An
// unconfigured cache is treated as a permanent miss.
func catalogList[T any](
	ctx context.Context,
	cache database.CacheClient,
	key string,
	load func() ([]*T, error),
) ([]*T, error) {
	log := logger.NewWithContext(ctx, "catalogCache").Function("catalogList")

	var cached []*T
	found, err := database.NewCacheBuilder(cache, key).
		WithHash(constants.CatalogCachePrefix).
		WithContext(ctx).
		Get(&cached)
	if err != nil && !errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to get catalog list from cache", "key", key, "error", err)
	}
	if found {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(cache, key).
		WithHash(constants.CatalogCachePrefix).
		WithContext(ctx).
		WithStruct(items).
		WithTTL(constants.CatalogCacheExpiry).
		Set(); err != nil && !errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to set catalog list in cache", "key", key, "error", err)
	}

	return items, nil
}

func clearCatalogList(ctx context.Context, cache database.CacheClient, key string) error {
	err := database.NewCacheBuilder(cache, key).
		WithHash(constants.CatalogCachePrefix).
		WithContext(ctx).
		Delete()
	if errors.Is(err, database.ErrCacheUnavailable) {
		return nil
	}
	return err
}
