package repositories

import (
	"context"

	. "songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Toggle(ctx context.Context, tx *gorm.DB, userID int, songID int) (bool, error)
	ListSongs(ctx context.Context, tx *gorm.DB, userID int) ([]*Song, error)
}

type favoriteRepository struct {
	songRepo SongRepository
}

func NewFavoriteRepository(songRepo SongRepository) FavoriteRepository {
	return &favoriteRepository{
		songRepo: songRepo,
	}
}

// Toggle flips membership without reading it first: a delete that removes a
// row means the song was a favorite, otherwise the row is inserted. It
// returns the new state.
func (r *favoriteRepository) Toggle(
	ctx context.Context,
	tx *gorm.DB,
	userID int,
	songID int,
) (bool, error) {
	log := logger.NewWithContext(ctx, "favoriteRepository").Function("Toggle")

	var isFavorite bool
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND song_id = ?", userID, songID).Delete(&UserFavoriteSong{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			isFavorite = false
			return nil
		}

		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&UserFavoriteSong{UserID: userID, SongID: songID}).Error; err != nil {
			return err
		}
		isFavorite = true
		return nil
	})
	if err != nil {
		return false, log.Err("failed to toggle favorite", err, "userID", userID, "songID", songID)
	}

	return isFavorite, nil
}

// ListSongs returns the user's favorites in the order they were added
func (r *favoriteRepository) ListSongs(ctx context.Context, tx *gorm.DB, userID int) ([]*Song, error) {
	log := logger.NewWithContext(ctx, "favoriteRepository").Function("ListSongs")

	var songIDs []int
	if err := tx.WithContext(ctx).
		Model(&UserFavoriteSong{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, song_id ASC").
		Pluck("song_id", &songIDs).Error; err != nil {
		return nil, log.Err("failed to list favorites", err, "userID", userID)
	}

	return r.songRepo.ListByIDs(ctx, tx, songIDs)
}
