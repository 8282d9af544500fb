package songController

import (
	"context"

	"songvault/internal/database"
	. "songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/pkg/logger"
)

type SongController struct {
	songRepo     repositories.SongRepository
	favoriteRepo repositories.FavoriteRepository
	db           database.DB
	log          logger.Logger
}

type SongControllerInterface interface {
	ListSongs(ctx context.Context) ([]*Song, error)
	GetSong(ctx context.Context, songID int) (*Song, error)
	Search(ctx context.Context, filter repositories.SongFilter) ([]*Song, error)
	ListFavorites(ctx context.Context, user *User) ([]*Song, error)
	ToggleFavorite(ctx context.Context, user *User, songID int) (bool, error)
}

func New(repos repositories.Repository, db database.DB) SongControllerInterface {
	return &SongController{
		songRepo:     repos.Song,
		favoriteRepo: repos.Favorite,
		db:           db,
		log:          logger.New("songController"),
	}
}

func (c *SongController) ListSongs(ctx context.Context) ([]*Song, error) {
	return c.Search(ctx, repositories.SongFilter{})
}

func (c *SongController) GetSong(ctx context.Context, songID int) (*Song, error) {
	return c.songRepo.GetByID(ctx, c.db.SQL, songID)
}

func (c *SongController) Search(ctx context.Context, filter repositories.SongFilter) ([]*Song, error) {
	log := c.log.TraceFromContext(ctx).Function("Search")

	songs, err := c.songRepo.List(ctx, c.db.SQL, filter)
	if err != nil {
		return nil, log.Err("failed to search songs", err, "query", filter.Query, "genreID", filter.GenreID)
	}

	return songs, nil
}

func (c *SongController) ListFavorites(ctx context.Context, user *User) ([]*Song, error) {
	log := c.log.TraceFromContext(ctx).Function("ListFavorites")

	songs, err := c.favoriteRepo.ListSongs(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to list favorites", err, "userID", user.ID)
	}

	return songs, nil
}

// ToggleFavorite flips the caller's favorite flag for the song and reports
// whether the song is a favorite afterwards.
func (c *SongController) ToggleFavorite(ctx context.Context, user *User, songID int) (bool, error) {
	log := c.log.TraceFromContext(ctx).Function("ToggleFavorite")

	if _, err := c.songRepo.GetByID(ctx, c.db.SQL, songID); err != nil {
		return false, err
	}

	isFavorite, err := c.favoriteRepo.Toggle(ctx, c.db.SQL, user.ID, songID)
	if err != nil {
		return false, log.Err("failed to toggle favorite", err, "userID", user.ID, "songID", songID)
	}

	log.Info("Favorite toggled", "userID", user.ID, "songID", songID, "isFavorite", isFavorite)
	return isFavorite, nil
}
