package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"songvault/config"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T, schedulerEnabled bool) (config.Config, services.Service) {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := config.Config{
		JWTSecret:             "test-secret-that-is-long-enough-123456",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLHours:  24,
		MediaRoot:             t.TempDir(),
		SchedulerEnabled:      schedulerEnabled,
	}

	repos := repositories.New(db)
	media := services.NewMediaService(cfg)
	return cfg, services.Service{
		Media:        media,
		MediaCleanup: services.NewMediaCleanupService(media, repos.Song, db),
		Scheduler:    services.NewSchedulerService(),
	}
}

func TestRegisterAllJobs_Disabled(t *testing.T) {
	cfg, svc := newServices(t, false)

	require.NoError(t, RegisterAllJobs(svc.Scheduler, cfg, svc))

	assert.Equal(t, 0, svc.Scheduler.GetJobCount())
}

func TestRegisterAllJobs_Enabled(t *testing.T) {
	cfg, svc := newServices(t, true)

	require.NoError(t, RegisterAllJobs(svc.Scheduler, cfg, svc))

	assert.Equal(t, 1, svc.Scheduler.GetJobCount())
}

func TestMediaCleanupJob_Execute(t *testing.T) {
	cfg, svc := newServices(t, true)

	orphan := filepath.Join(cfg.MediaRoot, "covers", "orphan.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(orphan), 0o755))
	require.NoError(t, os.WriteFile(orphan, []byte("x"), 0o644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(orphan, old, old))

	job := NewMediaCleanupJob(svc.MediaCleanup, services.Daily)
	assert.Equal(t, "OrphanedMediaCleanup", job.Name())
	assert.Equal(t, services.Daily, job.Schedule())

	require.NoError(t, job.Execute(context.Background()))

	_, err := os.Stat(orphan)
	assert.True(t, os.IsNotExist(err))
}
