// Package testapp assembles the full service graph over a SQLite test
// database so controller and handler tests can exercise real wiring.
package testapp

import (
	"testing"

	"songvault/config"
	"songvault/internal/controllers"
	"songvault/internal/database"
	"songvault/internal/events"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/testutil"
)

type App struct {
	Config      config.Config
	DB          database.DB
	EventBus    *events.EventBus
	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func TestConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		GeneralVersion:        "test",
		Environment:           "test",
		ServerPort:            8288,
		JWTSecret:             "songvault-test-secret-0123456789abcdef",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLHours:  24,
		MediaRoot:             t.TempDir(),
		MediaURL:              "/media/",
	}
}

func New(t *testing.T) *App {
	t.Helper()

	cfg := TestConfig(t)
	db := testutil.NewTestDB(t)
	bus := events.New(nil)
	t.Cleanup(func() { _ = bus.Close() })

	repos := repositories.New(db)
	svc := services.New(db, cfg, bus)

	return &App{
		Config:      cfg,
		DB:          db,
		EventBus:    bus,
		Repos:       repos,
		Services:    svc,
		Controllers: controllers.New(svc, repos, db),
	}
}
