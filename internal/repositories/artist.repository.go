package repositories

import (
	"context"
	"errors"

	"songvault/internal/apperrors"
	"songvault/internal/constants"
	"songvault/internal/database"
	. "songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

type ArtistRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]*Artist, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Artist, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, artist *Artist) error
	Update(ctx context.Context, tx *gorm.DB, artist *Artist) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	ClearCache(ctx context.Context) error
}

type artistRepository struct {
	cache database.CacheClient
}

func NewArtistRepository(cache database.CacheClient) ArtistRepository {
	return &artistRepository{
		cache: cache,
	}
}

func (r *artistRepository) List(ctx context.Context, tx *gorm.DB) ([]*Artist, error) {
	log := logger.NewWithContext(ctx, "artistRepository").Function("List")

	return catalogList(ctx, r.cache, constants.ArtistListCacheKey, func() ([]*Artist, error) {
		var artists []*Artist
		if err := tx.WithContext(ctx).Order("name ASC, id ASC").Find(&artists).Error; err != nil {
			return nil, log.Err("failed to list artists", err)
		}
		return artists, nil
	})
}

func (r *artistRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Artist, error) {
	log := logger.NewWithContext(ctx, "artistRepository").Function("GetByID")

	var artist Artist
	if err := tx.WithContext(ctx).First(&artist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrNotFound, "Artist not found", "artistID", id)
		}
		return nil, log.Err("failed to get artist", err, "artistID", id)
	}

	return &artist, nil
}

func (r *artistRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&Artist{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, logger.NewWithContext(ctx, "artistRepository").
			Function("Exists").
			Err("failed to check artist", err, "artistID", id)
	}
	return count > 0, nil
}

func (r *artistRepository) Create(ctx context.Context, tx *gorm.DB, artist *Artist) error {
	log := logger.NewWithContext(ctx, "artistRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(artist).Error; err != nil {
		return log.Err("failed to create artist", err, "name", artist.Name)
	}

	return nil
}

func (r *artistRepository) Update(ctx context.Context, tx *gorm.DB, artist *Artist) error {
	log := logger.NewWithContext(ctx, "artistRepository").Function("Update")

	if err := tx.WithContext(ctx).Save(artist).Error; err != nil {
		return log.Err("failed to update artist", err, "artistID", artist.ID)
	}

	return nil
}

// Delete clears the artist reference on its songs; the songs stay
func (r *artistRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := logger.NewWithContext(ctx, "artistRepository").Function("Delete")

	return tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Song{}).
			Where("artist_id = ?", id).
			Update("artist_id", nil).Error; err != nil {
			return log.Err("failed to clear artist on songs", err, "artistID", id)
		}

		result := tx.Delete(&Artist{}, id)
		if result.Error != nil {
			return log.Err("failed to delete artist", result.Error, "artistID", id)
		}
		if result.RowsAffected == 0 {
			return log.ErrorWithType(apperrors.ErrNotFound, "Artist not found", "artistID", id)
		}

		return nil
	})
}

func (r *artistRepository) ClearCache(ctx context.Context) error {
	return clearCatalogList(ctx, r.cache, constants.ArtistListCacheKey)
}
