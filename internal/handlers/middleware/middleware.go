package middleware

import (
	"songvault/config"
	"songvault/internal/database"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/pkg/logger"
)

type Middleware struct {
	DB           database.DB
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	Config       config.Config
	log          logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	return Middleware{
		DB:           db,
		userRepo:     repos.User,
		tokenService: services.Token,
		Config:       config,
		log:          logger.New("middleware"),
	}
}
