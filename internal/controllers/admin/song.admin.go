package adminController

import (
	"context"

	"songvault/internal/apperrors"
	"songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/types"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

const maxTitleLength = 255

func (c *AdminController) ListSongs(ctx context.Context, user *models.User) ([]*models.Song, error) {
	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}
	return c.songRepo.List(ctx, c.db.SQL, repositories.SongFilter{})
}

func (c *AdminController) GetSong(ctx context.Context, user *models.User, songID int) (*models.Song, error) {
	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}
	return c.songRepo.GetByID(ctx, c.db.SQL, songID)
}

func (c *AdminController) CreateSong(
	ctx context.Context,
	user *models.User,
	request types.SongWriteRequest,
	uploads SongUploads,
) (*models.Song, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateSong")

	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}

	song := &models.Song{UploadedByID: &user.ID}
	saved, err := c.applySong(ctx, log, song, request, uploads, true)
	if err != nil {
		return nil, err
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.songRepo.Create(ctx, tx, song); err != nil {
			return err
		}
		if request.GenreIDs != nil {
			return c.songRepo.SetGenres(ctx, tx, song.ID, *request.GenreIDs)
		}
		return nil
	})
	if err != nil {
		c.discard(ctx, saved)
		return nil, log.Err("failed to create song", err, "title", song.Title)
	}

	c.invalidate(ctx, services.SongResource, song.ID)
	log.Info("Song created", "songID", song.ID, "uploadedBy", user.ID)

	return c.songRepo.GetByID(ctx, c.db.SQL, song.ID)
}

// UpdateSong applies a write request to an existing song. Genres change
// only when genre_ids is sent; an empty list clears them.
func (c *AdminController) UpdateSong(
	ctx context.Context,
	user *models.User,
	songID int,
	request types.SongWriteRequest,
	uploads SongUploads,
	partial bool,
) (*models.Song, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateSong")

	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}

	song, err := c.songRepo.GetByID(ctx, c.db.SQL, songID)
	if err != nil {
		return nil, err
	}

	saved, err := c.applySong(ctx, log, song, request, uploads, !partial)
	if err != nil {
		return nil, err
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.songRepo.Update(ctx, tx, song); err != nil {
			return err
		}
		if request.GenreIDs != nil {
			return c.songRepo.SetGenres(ctx, tx, song.ID, *request.GenreIDs)
		}
		return nil
	})
	if err != nil {
		c.discard(ctx, saved)
		return nil, log.Err("failed to update song", err, "songID", songID)
	}

	c.invalidate(ctx, services.SongResource, song.ID)

	return c.songRepo.GetByID(ctx, c.db.SQL, song.ID)
}

func (c *AdminController) DeleteSong(ctx context.Context, user *models.User, songID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteSong")

	if err := c.requireStaff(ctx, user); err != nil {
		return err
	}

	if err := c.songRepo.Delete(ctx, c.db.SQL, songID); err != nil {
		return log.Err("failed to delete song", err, "songID", songID)
	}

	c.invalidate(ctx, services.SongResource, songID)
	return nil
}

// applySong validates the request and copies it onto song. Uploaded files
// are stored before returning; their paths are returned so a failed write
// can remove them again.
func (c *AdminController) applySong(
	ctx context.Context,
	log logger.Logger,
	song *models.Song,
	request types.SongWriteRequest,
	uploads SongUploads,
	required bool,
) ([]string, error) {
	title, err := requiredText(log, "Title", request.Title, required, maxTitleLength)
	if err != nil {
		return nil, err
	}

	if uploads.AudioFile == nil {
		if request.AudioFile == nil && required {
			return nil, log.ErrorWithType(apperrors.ErrValidation, "Audio file is required")
		}
		if request.AudioFile != nil {
			if err := models.ValidateAudioFile(*request.AudioFile); err != nil {
				return nil, log.ErrorWithType(apperrors.ErrValidation, err.Error(), "audioFile", *request.AudioFile)
			}
		}
	} else if err := models.ValidateAudioFile(uploads.AudioFile.Filename); err != nil {
		return nil, log.ErrorWithType(apperrors.ErrValidation, err.Error(), "audioFile", uploads.AudioFile.Filename)
	}

	if uploads.CoverImage == nil && request.CoverImage.Valid {
		if err := models.ValidateImageFile(request.CoverImage.Value); err != nil {
			return nil, log.ErrorWithType(apperrors.ErrValidation, err.Error(), "coverImage", request.CoverImage.Value)
		}
	} else if uploads.CoverImage != nil {
		if err := models.ValidateImageFile(uploads.CoverImage.Filename); err != nil {
			return nil, log.ErrorWithType(apperrors.ErrValidation, err.Error(), "coverImage", uploads.CoverImage.Filename)
		}
	}

	if request.ArtistID.Valid {
		exists, err := c.artistRepo.Exists(ctx, c.db.SQL, request.ArtistID.Value)
		if err != nil {
			return nil, log.Err("failed to check artist", err, "artistID", request.ArtistID.Value)
		}
		if !exists {
			return nil, log.ErrorWithType(apperrors.ErrValidation, "Artist does not exist", "artistID", request.ArtistID.Value)
		}
	}

	var saved []string
	if uploads.AudioFile != nil {
		path, err := c.mediaService.Save(ctx, services.MediaAudio, uploads.AudioFile)
		if err != nil {
			return nil, err
		}
		saved = append(saved, path)
		song.AudioFile = path
	} else if request.AudioFile != nil {
		song.AudioFile = *request.AudioFile
	}

	if uploads.CoverImage != nil {
		path, err := c.mediaService.Save(ctx, services.MediaCover, uploads.CoverImage)
		if err != nil {
			c.discard(ctx, saved)
			return nil, err
		}
		saved = append(saved, path)
		song.CoverImage = &path
	} else if request.CoverImage.Set {
		song.CoverImage = request.CoverImage.Ptr()
	}

	if title != nil {
		song.Title = *title
	}
	if request.Lyrics != nil {
		song.Lyrics = *request.Lyrics
	}
	if request.ArtistID.Set {
		song.ArtistID = request.ArtistID.Ptr()
	}

	return saved, nil
}

func (c *AdminController) discard(ctx context.Context, paths []string) {
	for _, path := range paths {
		_ = c.mediaService.Delete(ctx, path)
	}
}
