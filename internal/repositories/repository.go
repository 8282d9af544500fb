package repositories

import (
	"songvault/internal/database"
)

type Repository struct {
	User     UserRepository
	Genre    GenreRepository
	Artist   ArtistRepository
	Song     SongRepository
	Album    AlbumRepository
	Favorite FavoriteRepository
}

func New(db database.DB) Repository {
	genreRepo := NewGenreRepository(db.Cache.General)
	songRepo := NewSongRepository(genreRepo)

	return Repository{
		User:     NewUserRepository(db), // User repo needs cache for caching
		Genre:    genreRepo,
		Artist:   NewArtistRepository(db.Cache.General),
		Song:     songRepo,
		Album:    NewAlbumRepository(songRepo),
		Favorite: NewFavoriteRepository(songRepo),
	}
}
