package app

import (
	"context"

	"songvault/config"
	"songvault/internal/controllers"
	"songvault/internal/database"
	"songvault/internal/events"
	"songvault/internal/handlers/middleware"
	"songvault/internal/jobs"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/types"
	"songvault/pkg/logger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Renderer    types.Renderer
	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	app, err := Build(config, db)
	if err != nil {
		return &App{}, err
	}

	if err := jobs.RegisterAllJobs(app.Services.Scheduler, config, app.Services); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	if err := app.Services.Scheduler.Start(context.Background()); err != nil {
		return &App{}, log.Err("failed to start scheduler", err)
	}

	return app, nil
}

// Build wires repositories, services and controllers over an open database.
// Nothing is started; New schedules background jobs on top of it.
func Build(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("Build")

	eventBus := events.New(db.Cache.Events)

	repos := repositories.New(db)
	svc := services.New(db, config, eventBus)

	app := &App{
		Database:    db,
		Config:      config,
		EventBus:    eventBus,
		Renderer:    types.NewRenderer(config.MediaURL),
		Repos:       repos,
		Services:    svc,
		Middleware:  middleware.New(db, config, repos, svc),
		Controllers: controllers.New(svc, repos, db),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config.JWTSecret == "" {
		return log.ErrMsg("config is missing a JWT secret")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Transaction,
		a.Services.Token,
		a.Services.Sessions,
		a.Services.Media,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.Song,
		a.Controllers.Album,
		a.Controllers.Catalog,
		a.Controllers.Admin,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
