package services

import (
	"songvault/config"
	"songvault/internal/database"
	"songvault/internal/events"
	"songvault/internal/repositories"
)

type Service struct {
	Transaction       *TransactionService
	Sessions          SessionStore
	Token             *TokenService
	Media             *MediaService
	MediaCleanup      *MediaCleanupService
	Scheduler         *SchedulerService
	CacheInvalidation *CacheInvalidationService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) Service {
	repos := repositories.New(db)

	sessions := NewSessionStore(db.Cache.Session)
	media := NewMediaService(config)
	cacheInvalidation := NewCacheInvalidationService(eventBus, repos)
	cacheInvalidation.Listen()

	return Service{
		Transaction:       NewTransactionService(db),
		Sessions:          sessions,
		Token:             NewTokenService(config, sessions),
		Media:             media,
		MediaCleanup:      NewMediaCleanupService(media, repos.Song, db),
		Scheduler:         NewSchedulerService(),
		CacheInvalidation: cacheInvalidation,
	}
}
