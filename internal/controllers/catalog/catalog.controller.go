package catalogController

import (
	"context"

	"songvault/internal/database"
	. "songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/pkg/logger"
)

// CatalogController serves the public genre and artist reads
type CatalogController struct {
	genreRepo  repositories.GenreRepository
	artistRepo repositories.ArtistRepository
	songRepo   repositories.SongRepository
	db         database.DB
	log        logger.Logger
}

type CatalogControllerInterface interface {
	ListGenres(ctx context.Context) ([]*Genre, error)
	GetGenre(ctx context.Context, genreID int) (*Genre, error)
	ListArtists(ctx context.Context) ([]*Artist, error)
	GetArtist(ctx context.Context, artistID int) (*Artist, error)
	ListArtistSongs(ctx context.Context, artistID int) ([]*Song, error)
}

func New(repos repositories.Repository, db database.DB) CatalogControllerInterface {
	return &CatalogController{
		genreRepo:  repos.Genre,
		artistRepo: repos.Artist,
		songRepo:   repos.Song,
		db:         db,
		log:        logger.New("catalogController"),
	}
}

func (c *CatalogController) ListGenres(ctx context.Context) ([]*Genre, error) {
	genres, err := c.genreRepo.List(ctx, c.db.SQL)
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("ListGenres").Err("failed to list genres", err)
	}
	return genres, nil
}

func (c *CatalogController) GetGenre(ctx context.Context, genreID int) (*Genre, error) {
	return c.genreRepo.GetByID(ctx, c.db.SQL, genreID)
}

func (c *CatalogController) ListArtists(ctx context.Context) ([]*Artist, error) {
	artists, err := c.artistRepo.List(ctx, c.db.SQL)
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("ListArtists").Err("failed to list artists", err)
	}
	return artists, nil
}

func (c *CatalogController) GetArtist(ctx context.Context, artistID int) (*Artist, error) {
	return c.artistRepo.GetByID(ctx, c.db.SQL, artistID)
}

func (c *CatalogController) ListArtistSongs(ctx context.Context, artistID int) ([]*Song, error) {
	if _, err := c.artistRepo.GetByID(ctx, c.db.SQL, artistID); err != nil {
		return nil, err
	}
	return c.songRepo.ListByArtist(ctx, c.db.SQL, artistID)
}
