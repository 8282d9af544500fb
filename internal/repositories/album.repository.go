package repositories

import (
	"context"
	"errors"

	"songvault/internal/apperrors"
	. "songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlbumRepository only ever resolves albums together with their owner, so a
// foreign album is indistinguishable from a missing one.
type AlbumRepository interface {
	ListForUser(ctx context.Context, tx *gorm.DB, userID int) ([]*Album, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID int, albumID int) (*Album, error)
	Create(ctx context.Context, tx *gorm.DB, album *Album) error
	Update(ctx context.Context, tx *gorm.DB, album *Album) error
	Delete(ctx context.Context, tx *gorm.DB, userID int, albumID int) error
	AddSong(ctx context.Context, tx *gorm.DB, albumID int, songID int) (bool, error)
	RemoveSong(ctx context.Context, tx *gorm.DB, albumID int, songID int) (bool, error)
}

type albumRepository struct {
	songRepo SongRepository
}

func NewAlbumRepository(songRepo SongRepository) AlbumRepository {
	return &albumRepository{
		songRepo: songRepo,
	}
}

func (r *albumRepository) ListForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID int,
) ([]*Album, error) {
	log := logger.NewWithContext(ctx, "albumRepository").Function("ListForUser")

	var albums []*Album
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&albums).Error; err != nil {
		return nil, log.Err("failed to list albums", err, "userID", userID)
	}

	if err := r.attachSongs(ctx, tx, albums); err != nil {
		return nil, err
	}

	return albums, nil
}

func (r *albumRepository) GetForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID int,
	albumID int,
) (*Album, error) {
	log := logger.NewWithContext(ctx, "albumRepository").Function("GetForUser")

	var album Album
	if err := tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", albumID, userID).
		First(&album).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrNotFound, "Album not found", "albumID", albumID, "userID", userID)
		}
		return nil, log.Err("failed to get album", err, "albumID", albumID)
	}

	if err := r.attachSongs(ctx, tx, []*Album{&album}); err != nil {
		return nil, err
	}

	return &album, nil
}

func (r *albumRepository) Create(ctx context.Context, tx *gorm.DB, album *Album) error {
	log := logger.NewWithContext(ctx, "albumRepository").Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(album).Error; err != nil {
		return log.Err("failed to create album", err, "userID", album.UserID)
	}

	if album.Songs == nil {
		album.Songs = []*Song{}
	}

	return nil
}

func (r *albumRepository) Update(ctx context.Context, tx *gorm.DB, album *Album) error {
	log := logger.NewWithContext(ctx, "albumRepository").Function("Update")

	result := tx.WithContext(ctx).
		Model(&Album{}).
		Where("id = ? AND user_id = ?", album.ID, album.UserID).
		Updates(map[string]any{"name": album.Name})
	if result.Error != nil {
		return log.Err("failed to update album", result.Error, "albumID", album.ID)
	}
	if result.RowsAffected == 0 {
		return log.ErrorWithType(apperrors.ErrNotFound, "Album not found", "albumID", album.ID)
	}

	return nil
}

func (r *albumRepository) Delete(ctx context.Context, tx *gorm.DB, userID int, albumID int) error {
	log := logger.NewWithContext(ctx, "albumRepository").Function("Delete")

	return tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"album_id IN (?)",
			tx.Model(&Album{}).Select("id").Where("id = ? AND user_id = ?", albumID, userID),
		).Delete(&AlbumSong{}).Error; err != nil {
			return log.Err("failed to delete album songs", err, "albumID", albumID)
		}

		result := tx.Where("id = ? AND user_id = ?", albumID, userID).Delete(&Album{})
		if result.Error != nil {
			return log.Err("failed to delete album", result.Error, "albumID", albumID)
		}
		if result.RowsAffected == 0 {
			return log.ErrorWithType(apperrors.ErrNotFound, "Album not found", "albumID", albumID, "userID", userID)
		}

		return nil
	})
}

// AddSong inserts the membership row, ignoring a conflicting pair. It
// reports false when the song was already in the album.
func (r *albumRepository) AddSong(
	ctx context.Context,
	tx *gorm.DB,
	albumID int,
	songID int,
) (bool, error) {
	log := logger.NewWithContext(ctx, "albumRepository").Function("AddSong")

	result := tx.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&AlbumSong{AlbumID: albumID, SongID: songID})
	if result.Error != nil {
		return false, log.Err("failed to add song to album", result.Error, "albumID", albumID, "songID", songID)
	}

	return result.RowsAffected > 0, nil
}

// RemoveSong reports false when the song was not in the album
func (r *albumRepository) RemoveSong(
	ctx context.Context,
	tx *gorm.DB,
	albumID int,
	songID int,
) (bool, error) {
	log := logger.NewWithContext(ctx, "albumRepository").Function("RemoveSong")

	result := tx.WithContext(ctx).
		Where("album_id = ? AND song_id = ?", albumID, songID).
		Delete(&AlbumSong{})
	if result.Error != nil {
		return false, log.Err("failed to remove song from album", result.Error, "albumID", albumID, "songID", songID)
	}

	return result.RowsAffected > 0, nil
}

// attachSongs fills Album.Songs in the order the songs were added
func (r *albumRepository) attachSongs(ctx context.Context, tx *gorm.DB, albums []*Album) error {
	log := logger.NewWithContext(ctx, "albumRepository").Function("attachSongs")

	if len(albums) == 0 {
		return nil
	}

	albumIDs := make([]int, 0, len(albums))
	for _, album := range albums {
		album.Songs = []*Song{}
		albumIDs = append(albumIDs, album.ID)
	}

	var rows []AlbumSong
	if err := tx.WithContext(ctx).
		Where("album_id IN ?", albumIDs).
		Order("created_at ASC, song_id ASC").
		Find(&rows).Error; err != nil {
		return log.Err("failed to load album songs", err, "albumIDs", albumIDs)
	}

	songIDs := make([]int, 0, len(rows))
	for _, row := range rows {
		songIDs = append(songIDs, row.SongID)
	}

	songs, err := r.songRepo.ListByIDs(ctx, tx, uniqueIDs(songIDs))
	if err != nil {
		return err
	}

	byID := make(map[int]*Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}

	byAlbum := make(map[int]*Album, len(albums))
	for _, album := range albums {
		byAlbum[album.ID] = album
	}

	for _, row := range rows {
		song, ok := byID[row.SongID]
		if !ok {
			continue
		}
		album := byAlbum[row.AlbumID]
		album.Songs = append(album.Songs, song)
	}

	return nil
}
