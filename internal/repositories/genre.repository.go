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

type GenreRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]*Genre, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Genre, error)
	MissingIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]int, error)
	Create(ctx context.Context, tx *gorm.DB, genre *Genre) error
	Update(ctx context.Context, tx *gorm.DB, genre *Genre) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	ClearCache(ctx context.Context) error
}

type genreRepository struct {
	cache database.CacheClient
}

func NewGenreRepository(cache database.CacheClient) GenreRepository {
	return &genreRepository{
		cache: cache,
	}
}

func (r *genreRepository) List(ctx context.Context, tx *gorm.DB) ([]*Genre, error) {
	log := logger.NewWithContext(ctx, "genreRepository").Function("List")

	return catalogList(ctx, r.cache, constants.GenreListCacheKey, func() ([]*Genre, error) {
		var genres []*Genre
		if err := tx.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
			return nil, log.Err("failed to list genres", err)
		}
		return genres, nil
	})
}

func (r *genreRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Genre, error) {
	log := logger.NewWithContext(ctx, "genreRepository").Function("GetByID")

	genre, err := gorm.G[Genre](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrNotFound, "Genre not found", "genreID", id)
		}
		return nil, log.Err("failed to get genre", err, "genreID", id)
	}

	return &genre, nil
}

// MissingIDs returns the ids from the input that have no genre row
func (r *genreRepository) MissingIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]int, error) {
	log := logger.NewWithContext(ctx, "genreRepository").Function("MissingIDs")

	if len(ids) == 0 {
		return nil, nil
	}

	var existing []int
	if err := tx.WithContext(ctx).
		Model(&Genre{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error; err != nil {
		return nil, log.Err("failed to look up genres", err, "genreIDs", ids)
	}

	present := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		present[id] = struct{}{}
	}

	var missing []int
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

func (r *genreRepository) Create(ctx context.Context, tx *gorm.DB, genre *Genre) error {
	log := logger.NewWithContext(ctx, "genreRepository").Function("Create")

	if err := r.ensureUniqueName(ctx, tx, genre); err != nil {
		return err
	}

	if err := tx.WithContext(ctx).Create(genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return log.ErrorWithType(apperrors.ErrAlreadyExists, "Genre with this name already exists", "name", genre.Name)
		}
		return log.Err("failed to create genre", err, "name", genre.Name)
	}

	return nil
}

func (r *genreRepository) Update(ctx context.Context, tx *gorm.DB, genre *Genre) error {
	log := logger.NewWithContext(ctx, "genreRepository").Function("Update")

	if err := r.ensureUniqueName(ctx, tx, genre); err != nil {
		return err
	}

	if err := tx.WithContext(ctx).Save(genre).Error; err != nil {
		return log.Err("failed to update genre", err, "genreID", genre.ID)
	}

	return nil
}

// Delete drops the genre from every song before removing it
func (r *genreRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := logger.NewWithContext(ctx, "genreRepository").Function("Delete")

	return tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&SongGenre{}).Error; err != nil {
			return log.Err("failed to detach genre from songs", err, "genreID", id)
		}

		result := tx.Delete(&Genre{}, id)
		if result.Error != nil {
			return log.Err("failed to delete genre", result.Error, "genreID", id)
		}
		if result.RowsAffected == 0 {
			return log.ErrorWithType(apperrors.ErrNotFound, "Genre not found", "genreID", id)
		}

		return nil
	})
}

func (r *genreRepository) ClearCache(ctx context.Context) error {
	return clearCatalogList(ctx, r.cache, constants.GenreListCacheKey)
}

func (r *genreRepository) ensureUniqueName(ctx context.Context, tx *gorm.DB, genre *Genre) error {
	log := logger.NewWithContext(ctx, "genreRepository").Function("ensureUniqueName")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Genre{}).
		Where("name = ? AND id <> ?", genre.Name, genre.ID).
		Count(&count).Error; err != nil {
		return log.Err("failed to check genre name", err, "name", genre.Name)
	}

	if count > 0 {
		return log.ErrorWithType(apperrors.ErrAlreadyExists, "Genre with this name already exists", "name", genre.Name)
	}

	return nil
}
