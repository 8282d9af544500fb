package jobs

import (
	"context"

	"songvault/internal/services"
	"songvault/pkg/logger"
)

type MediaCleanupJob struct {
	cleanup  *services.MediaCleanupService
	log      logger.Logger
	schedule services.Schedule
}

func NewMediaCleanupJob(
	cleanup *services.MediaCleanupService,
	schedule services.Schedule,
) *MediaCleanupJob {
	return &MediaCleanupJob{
		cleanup:  cleanup,
		log:      logger.New("mediaCleanupJob"),
		schedule: schedule,
	}
}

func (j *MediaCleanupJob) Name() string {
	return "OrphanedMediaCleanup"
}

func (j *MediaCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	removed, err := j.cleanup.RemoveOrphans(ctx)
	if err != nil {
		return log.Err("orphaned media cleanup failed", err)
	}

	log.Info("Orphaned media cleanup completed", "removed", removed)
	return nil
}

func (j *MediaCleanupJob) Schedule() services.Schedule {
	return j.schedule
}
