package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"songvault/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	schedule Schedule
	runs     atomic.Int32
	err      error
}

func (j *countingJob) Name() string       { return j.name }
func (j *countingJob) Schedule() Schedule { return j.schedule }
func (j *countingJob) Execute(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler_StartWithoutJobs(t *testing.T) {
	scheduler := NewSchedulerService()

	require.NoError(t, scheduler.Start(context.Background()))
	assert.False(t, scheduler.IsRunning())
}

func TestScheduler_AddStartStop(t *testing.T) {
	scheduler := NewSchedulerService()
	job := &countingJob{name: "cleanup", schedule: Daily}

	require.NoError(t, scheduler.AddJob(job))
	assert.Equal(t, 1, scheduler.GetJobCount())

	require.NoError(t, scheduler.Start(context.Background()))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(context.Background()))
	assert.False(t, scheduler.IsRunning())
}

func TestScheduler_RejectsUnknownSchedule(t *testing.T) {
	scheduler := NewSchedulerService()

	err := scheduler.AddJob(&countingJob{name: "weird", schedule: Schedule(42)})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 0, scheduler.GetJobCount())
}

func TestScheduler_RunJob(t *testing.T) {
	scheduler := NewSchedulerService()
	ok := &countingJob{name: "ok", schedule: Hourly}
	failing := &countingJob{name: "failing", schedule: Hourly, err: errors.New("boom")}
	require.NoError(t, scheduler.AddJob(ok))
	require.NoError(t, scheduler.AddJob(failing))

	require.NoError(t, scheduler.RunJob(context.Background(), "ok"))
	assert.Equal(t, int32(1), ok.runs.Load())

	assert.EqualError(t, scheduler.RunJob(context.Background(), "failing"), "boom")

	err := scheduler.RunJob(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
