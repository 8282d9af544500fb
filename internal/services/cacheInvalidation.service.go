package services

import (
	"context"

	"songvault/internal/events"
	"songvault/internal/repositories"
	"songvault/pkg/logger"
)

type CacheResource string

const (
	GenreResource  CacheResource = "genres"
	ArtistResource CacheResource = "artists"
	SongResource   CacheResource = "songs"
	UserResource   CacheResource = "user"
)

// CacheInvalidationService drops cached reads after catalog writes. The
// local cache is cleared before returning; other processes learn about the
// change through the event bus.
type CacheInvalidationService struct {
	eventBus *events.EventBus
	repos    repositories.Repository
	log      logger.Logger
}

func NewCacheInvalidationService(
	eventBus *events.EventBus,
	repos repositories.Repository,
) *CacheInvalidationService {
	return &CacheInvalidationService{
		eventBus: eventBus,
		repos:    repos,
		log:      logger.New("CacheInvalidationService"),
	}
}

// Listen subscribes to invalidations published by other processes
func (s *CacheInvalidationService) Listen() {
	s.eventBus.Subscribe(events.CACHE_INVALIDATION_CHANNEL, s.handle)
}

func (s *CacheInvalidationService) Invalidate(ctx context.Context, resource CacheResource, id int) error {
	log := s.log.TraceFromContext(ctx).Function("Invalidate")

	if err := s.clear(ctx, resource, id); err != nil {
		return log.Err("failed to clear cache", err, "resource", resource, "id", id)
	}

	if err := s.eventBus.PublishCacheInvalidation(ctx, string(resource), id); err != nil {
		log.Warn("failed to publish cache invalidation", "resource", resource, "error", err)
	}

	return nil
}

func (s *CacheInvalidationService) handle(event events.Event) error {
	if event.Origin == s.eventBus.Origin() {
		return nil
	}

	resource, _ := event.Data["resourceType"].(string)

	var id int
	switch raw := event.Data["resourceId"].(type) {
	case int:
		id = raw
	case float64:
		id = int(raw)
	}

	return s.clear(context.Background(), CacheResource(resource), id)
}

func (s *CacheInvalidationService) clear(ctx context.Context, resource CacheResource, id int) error {
	switch resource {
	case GenreResource:
		return s.repos.Genre.ClearCache(ctx)
	case ArtistResource:
		return s.repos.Artist.ClearCache(ctx)
	case UserResource:
		return s.repos.User.ClearUserCache(ctx, id)
	case SongResource:
		// song reads are never cached; the event only informs listeners
		return nil
	default:
		s.log.Function("clear").Warn("Unknown cache resource", "resource", resource)
		return nil
	}
}
