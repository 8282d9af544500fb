package repositories

import (
	"context"
	"errors"
	"strconv"

	"songvault/internal/apperrors"
	"songvault/internal/constants"
	"songvault/internal/database"
	. "songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	Delete(ctx context.Context, tx *gorm.DB, userID int) error
	ClearUserCache(ctx context.Context, userID int) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

// GetByID serves authenticated requests, so it reads through the User cache
func (r *userRepository) GetByID(ctx context.Context, id int) (*User, error) {
	log := logger.NewWithContext(ctx, "userRepository").Function("GetByID")

	var user User
	found, err := r.cacheBuilder(ctx, id).Get(&user)
	if err != nil && !errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to get user from cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrNotFound, "User not found", "userID", id)
		}
		return nil, log.Err("failed to get user by id", err, "userID", id)
	}

	if err := r.cacheBuilder(ctx, id).WithStruct(&user).WithTTL(constants.UserCacheExpiry).Set(); err != nil &&
		!errors.Is(err, database.ErrCacheUnavailable) {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(
	ctx context.Context,
	tx *gorm.DB,
	username string,
) (*User, error) {
	log := logger.NewWithContext(ctx, "userRepository").Function("GetByUsername")

	var user User
	if err := tx.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrNotFound, "User not found", "username", username)
		}
		return nil, log.Err("failed to get user by username", err, "username", username)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := logger.NewWithContext(ctx, "userRepository").Function("Create")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&User{}).
		Where("username = ?", user.Username).
		Count(&count).Error; err != nil {
		return log.Err("failed to check username", err, "username", user.Username)
	}

	if count > 0 {
		return log.ErrorWithType(apperrors.ErrAlreadyExists, "Username already taken", "username", user.Username)
	}

	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return log.ErrorWithType(apperrors.ErrAlreadyExists, "Username already taken", "username", user.Username)
		}
		return log.Err("failed to create user", err, "username", user.Username)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := logger.NewWithContext(ctx, "userRepository").Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	if err := r.ClearUserCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

// Delete removes the user's albums and favorites and detaches the songs they
// uploaded. Songs themselves are never removed.
func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, userID int) error {
	log := logger.NewWithContext(ctx, "userRepository").Function("Delete")

	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&UserFavoriteSong{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&Song{}).
			Where("uploaded_by_id = ?", userID).
			Update("uploaded_by_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where(
			"album_id IN (?)",
			tx.Model(&Album{}).Select("id").Where("user_id = ?", userID),
		).Delete(&AlbumSong{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&Album{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return log.ErrorWithType(apperrors.ErrNotFound, "User not found", "userID", userID)
		}

		return nil
	})
	if err != nil {
		return log.Err("failed to delete user", err, "userID", userID)
	}

	if err := r.ClearUserCache(ctx, userID); err != nil {
		log.Warn("failed to clear user cache after delete", "userID", userID, "error", err)
	}

	return nil
}

func (r *userRepository) ClearUserCache(ctx context.Context, userID int) error {
	err := r.cacheBuilder(ctx, userID).Delete()
	if errors.Is(err, database.ErrCacheUnavailable) {
		return nil
	}
	return err
}

func (r *userRepository) cacheBuilder(ctx context.Context, userID int) *database.CacheBuilder {
	return database.NewCacheBuilder(r.db.Cache.User, strconv.Itoa(userID)).
		WithHash(constants.UserCachePrefix).
		WithContext(ctx)
}
