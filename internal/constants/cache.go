package constants

import "time"

const (
	UserCachePrefix    = "user"             // User cache by id (CacheBuilder adds colon)
	UserCacheExpiry    = 7 * 24 * time.Hour // 7 days
	CatalogCachePrefix = "catalog"          // Genre and artist lists in the General cache
	CatalogCacheExpiry = 1 * time.Hour
	SessionCachePrefix = "session"

	GenreListCacheKey  = "genres"
	ArtistListCacheKey = "artists"
)
