package repositories

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"songvault/internal/apperrors"
	. "songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SongRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter SongFilter) ([]*Song, error)
	ListByArtist(ctx context.Context, tx *gorm.DB, artistID int) ([]*Song, error)
	ListByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*Song, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Song, error)
	Create(ctx context.Context, tx *gorm.DB, song *Song) error
	Update(ctx context.Context, tx *gorm.DB, song *Song) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	SetGenres(ctx context.Context, tx *gorm.DB, songID int, genreIDs []int) error
	ListMediaPaths(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type songRepository struct {
	genreRepo GenreRepository
}

func NewSongRepository(genreRepo GenreRepository) SongRepository {
	return &songRepository{
		genreRepo: genreRepo,
	}
}

func withSongRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Artist").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("genres.name ASC")
		})
}

func (r *songRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter SongFilter,
) ([]*Song, error) {
	log := logger.NewWithContext(ctx, "songRepository").Function("List")

	var songs []*Song
	if err := tx.WithContext(ctx).
		Scopes(withSongRelations, filter.Scope).
		Find(&songs).Error; err != nil {
		return nil, log.Err("failed to list songs", err, "query", filter.Query, "genreID", filter.GenreID)
	}

	return songs, nil
}

func (r *songRepository) ListByArtist(
	ctx context.Context,
	tx *gorm.DB,
	artistID int,
) ([]*Song, error) {
	log := logger.NewWithContext(ctx, "songRepository").Function("ListByArtist")

	var songs []*Song
	if err := tx.WithContext(ctx).
		Scopes(withSongRelations).
		Where("artist_id = ?", artistID).
		Order("songs.id DESC").
		Find(&songs).Error; err != nil {
		return nil, log.Err("failed to list artist songs", err, "artistID", artistID)
	}

	return songs, nil
}

// ListByIDs loads songs and returns them in the order of ids. Ids without a
// song are skipped.
func (r *songRepository) ListByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*Song, error) {
	log := logger.NewWithContext(ctx, "songRepository").Function("ListByIDs")

	if len(ids) == 0 {
		return []*Song{}, nil
	}

	var songs []*Song
	if err := tx.WithContext(ctx).
		Scopes(withSongRelations).
		Where("id IN ?", ids).
		Find(&songs).Error; err != nil {
		return nil, log.Err("failed to load songs", err, "songIDs", ids)
	}

	byID := make(map[int]*Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}

	ordered := make([]*Song, 0, len(songs))
	for _, id := range ids {
		if song, ok := byID[id]; ok {
			ordered = append(ordered, song)
		}
	}

	return ordered, nil
}

func (r *songRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Song, error) {
	log := logger.NewWithContext(ctx, "songRepository").Function("GetByID")

	var song Song
	if err := tx.WithContext(ctx).
		Scopes(withSongRelations).
		First(&song, "songs.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(apperrors.ErrNotFound, "Song not found", "songID", id)
		}
		return nil, log.Err("failed to get song", err, "songID", id)
	}

	return &song, nil
}

func (r *songRepository) Create(ctx context.Context, tx *gorm.DB, song *Song) error {
	log := logger.NewWithContext(ctx, "songRepository").Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(song).Error; err != nil {
		return log.Err("failed to create song", err, "title", song.Title)
	}

	return nil
}

// Update writes the scalar columns only. created_at and uploaded_by_id are
// never touched after creation.
func (r *songRepository) Update(ctx context.Context, tx *gorm.DB, song *Song) error {
	log := logger.NewWithContext(ctx, "songRepository").Function("Update")

	result := tx.WithContext(ctx).
		Model(&Song{}).
		Where("id = ?", song.ID).
		Select("title", "cover_image", "audio_file", "lyrics", "artist_id", "updated_at").
		Updates(song)
	if result.Error != nil {
		return log.Err("failed to update song", result.Error, "songID", song.ID)
	}
	if result.RowsAffected == 0 {
		return log.ErrorWithType(apperrors.ErrNotFound, "Song not found", "songID", song.ID)
	}

	return nil
}

// Delete removes the song's genre, album and favorite rows with it
func (r *songRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := logger.NewWithContext(ctx, "songRepository").Function("Delete")

	return tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, association := range []any{&SongGenre{}, &AlbumSong{}, &UserFavoriteSong{}} {
			if err := tx.Where("song_id = ?", id).Delete(association).Error; err != nil {
				return log.Err("failed to delete song associations", err, "songID", id)
			}
		}

		result := tx.Delete(&Song{}, id)
		if result.Error != nil {
			return log.Err("failed to delete song", result.Error, "songID", id)
		}
		if result.RowsAffected == 0 {
			return log.ErrorWithType(apperrors.ErrNotFound, "Song not found", "songID", id)
		}

		return nil
	})
}

// SetGenres replaces the whole genre set in one transaction. Unknown genre
// ids are rejected before anything is written.
func (r *songRepository) SetGenres(
	ctx context.Context,
	tx *gorm.DB,
	songID int,
	genreIDs []int,
) error {
	log := logger.NewWithContext(ctx, "songRepository").Function("SetGenres")

	unique := uniqueIDs(genreIDs)

	return tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		missing, err := r.genreRepo.MissingIDs(ctx, tx, unique)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return log.ErrorWithType(
				apperrors.ErrValidation,
				fmt.Sprintf("Unknown genre ids: %s", joinIDs(missing)),
				"songID", songID,
				"genreIDs", missing,
			)
		}

		if err := tx.Where("song_id = ?", songID).Delete(&SongGenre{}).Error; err != nil {
			return log.Err("failed to clear song genres", err, "songID", songID)
		}

		if len(unique) == 0 {
			return nil
		}

		rows := make([]SongGenre, 0, len(unique))
		for _, genreID := range unique {
			rows = append(rows, SongGenre{SongID: songID, GenreID: genreID})
		}

		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return log.Err("failed to insert song genres", err, "songID", songID)
		}

		return nil
	})
}

// ListMediaPaths returns every stored media reference held by songs and artists
func (r *songRepository) ListMediaPaths(ctx context.Context, tx *gorm.DB) ([]string, error) {
	log := logger.NewWithContext(ctx, "songRepository").Function("ListMediaPaths")

	columns := []struct {
		model  any
		column string
	}{
		{&Song{}, "audio_file"},
		{&Song{}, "cover_image"},
		{&Artist{}, "image"},
	}

	var paths []string
	for _, c := range columns {
		var batch []string
		if err := tx.WithContext(ctx).
			Model(c.model).
			Where(c.column + " IS NOT NULL AND " + c.column + " <> ''").
			Pluck(c.column, &batch).Error; err != nil {
			return nil, log.Err("failed to list media paths", err, "column", c.column)
		}
		paths = append(paths, batch...)
	}

	return paths, nil
}

func uniqueIDs(ids []int) []int {
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	return unique
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ", ")
}
