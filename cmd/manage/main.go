package main

import (
	"context"
	"os"

	"songvault/config"
	"songvault/internal/database"
	"songvault/internal/events"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/pkg/logger"
)

func main() {
	log := logger.New("manage").Function("main")

	config, err := config.New()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}

	eventBus := events.New(db.Cache.Events)
	repos := repositories.New(db)
	runner := NewRunner(RunnerConfig{
		DB:           db,
		Repos:        repos,
		Cleanup:      services.NewMediaCleanupService(services.NewMediaService(config), repos.Song, db),
		Invalidation: services.NewCacheInvalidationService(eventBus, repos),
		Out:          os.Stdout,
	})

	err = runner.Command().Run(context.Background(), os.Args)
	if closeErr := eventBus.Close(); closeErr != nil {
		log.Er("failed to close event bus", closeErr)
	}
	if closeErr := db.Close(); closeErr != nil {
		log.Er("failed to close database", closeErr)
	}
	if err != nil {
		log.Er("command failed", err)
		os.Exit(1)
	}
}
