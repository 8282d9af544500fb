package services

import (
	"context"
	"sync"
	"time"

	"songvault/internal/apperrors"
	"songvault/pkg/logger"

	"github.com/go-co-op/gocron"
)

type Schedule int

const (
	Hourly Schedule = iota
	Daily           // 03:00 UTC
)

// Job is a unit of background work run by the scheduler
type Job interface {
	Name() string
	Execute(ctx context.Context) error
	Schedule() Schedule
}

type SchedulerService struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	log       logger.Logger
	started   bool
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewSchedulerService() *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())

	return &SchedulerService{
		scheduler: gocron.NewScheduler(time.UTC),
		jobs:      make([]Job, 0),
		log:       logger.New("scheduler"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *SchedulerService) executeJob(ctx context.Context, job Job, log logger.Logger) error {
	done := log.Timer(job.Name())
	defer done()

	if err := job.Execute(ctx); err != nil {
		return log.Err("Job execution failed", err, "job", job.Name())
	}

	log.Info("Job execution completed", "job", job.Name())
	return nil
}

func (s *SchedulerService) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.Function("AddJob")

	run := func() {
		_ = s.executeJob(s.ctx, job, log)
	}

	var err error
	switch job.Schedule() {
	case Daily:
		_, err = s.scheduler.Every(1).Day().At("03:00").Do(run)
	case Hourly:
		_, err = s.scheduler.Every(1).Hour().Do(run)
	default:
		return log.ErrorWithType(apperrors.ErrValidation, "unknown job schedule", "job", job.Name(), "schedule", job.Schedule())
	}

	if err != nil {
		return log.Err("failed to register job with scheduler", err, "job", job.Name())
	}

	s.jobs = append(s.jobs, job)
	log.Info("Job registered", "job", job.Name())

	return nil
}

func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.TraceFromContext(ctx).Function("Start")

	if s.started {
		return nil
	}

	if len(s.jobs) == 0 {
		log.Info("No jobs registered, scheduler will not start")
		return nil
	}

	s.scheduler.StartAsync()
	s.started = true

	for _, job := range s.scheduler.Jobs() {
		log.Info("Job scheduled", "nextRun", job.NextRun())
	}

	return nil
}

func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.TraceFromContext(ctx).Function("Stop")

	if !s.started {
		return nil
	}

	s.cancel()
	s.scheduler.Stop()
	s.started = false

	log.Info("Scheduler stopped")
	return nil
}

func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *SchedulerService) GetJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// RunJob executes a registered job immediately and waits for it to finish.
func (s *SchedulerService) RunJob(ctx context.Context, name string) error {
	s.mu.Lock()
	var target Job
	for _, job := range s.jobs {
		if job.Name() == name {
			target = job
			break
		}
	}
	s.mu.Unlock()

	log := s.log.TraceFromContext(ctx).Function("RunJob")
	if target == nil {
		return log.ErrorWithType(apperrors.ErrNotFound, "Job not found", "job", name)
	}

	return s.executeJob(ctx, target, log)
}
