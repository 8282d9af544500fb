package controllers

import (
	"songvault/internal/database"
	"songvault/internal/repositories"
	"songvault/internal/services"

	adminController "songvault/internal/controllers/admin"
	albumController "songvault/internal/controllers/albums"
	authController "songvault/internal/controllers/auth"
	catalogController "songvault/internal/controllers/catalog"
	songController "songvault/internal/controllers/songs"
)

type Controllers struct {
	Auth    authController.AuthControllerInterface
	Song    songController.SongControllerInterface
	Album   albumController.AlbumControllerInterface
	Catalog catalogController.CatalogControllerInterface
	Admin   adminController.AdminControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:    authController.New(repos, services, db),
		Song:    songController.New(repos, db),
		Album:   albumController.New(repos, services, db),
		Catalog: catalogController.New(repos, db),
		Admin:   adminController.New(repos, services, db),
	}
}
