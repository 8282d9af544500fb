package jobs

import (
	"songvault/config"
	"songvault/internal/services"
	"songvault/pkg/logger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	svc services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, no jobs registered")
		return nil
	}

	if err := schedulerService.AddJob(NewMediaCleanupJob(svc.MediaCleanup, services.Daily)); err != nil {
		return log.Err("failed to register media cleanup job", err)
	}

	log.Info("Jobs registered", "count", schedulerService.GetJobCount())
	return nil
}
