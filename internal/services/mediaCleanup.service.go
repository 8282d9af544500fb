package services

import (
	"context"
	"time"

	"songvault/internal/database"
	"songvault/internal/repositories"
	"songvault/pkg/logger"
)

const orphanMinimumAge = 1 * time.Hour

// MediaCleanupService deletes stored uploads no song or artist refers to
// any more. Recent files are left alone so an upload whose record is still
// being written is not removed underneath it.
type MediaCleanupService struct {
	media    *MediaService
	songRepo repositories.SongRepository
	db       database.DB
	minAge   time.Duration
	log      logger.Logger
}

func NewMediaCleanupService(
	media *MediaService,
	songRepo repositories.SongRepository,
	db database.DB,
) *MediaCleanupService {
	return &MediaCleanupService{
		media:    media,
		songRepo: songRepo,
		db:       db,
		minAge:   orphanMinimumAge,
		log:      logger.New("mediaCleanupService"),
	}
}

func (s *MediaCleanupService) RemoveOrphans(ctx context.Context) (int, error) {
	log := s.log.TraceFromContext(ctx).Function("RemoveOrphans")

	referenced, err := s.songRepo.ListMediaPaths(ctx, s.db.SQL)
	if err != nil {
		return 0, log.Err("failed to list referenced media", err)
	}

	inUse := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		inUse[p] = struct{}{}
	}

	files, err := s.media.ListFiles(ctx)
	if err != nil {
		return 0, log.Err("failed to list stored media", err)
	}

	cutoff := time.Now().Add(-s.minAge)
	removed := 0
	for _, file := range files {
		if _, ok := inUse[file.Path]; ok {
			continue
		}
		if file.ModifiedAt.After(cutoff) {
			continue
		}
		if err := s.media.Delete(ctx, file.Path); err != nil {
			log.Warn("failed to delete orphaned media", "path", file.Path, "error", err)
			continue
		}
		removed++
	}

	log.Info("Orphaned media cleanup finished", "scanned", len(files), "removed", removed)
	return removed, nil
}
