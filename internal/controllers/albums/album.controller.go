package albumController

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"songvault/internal/apperrors"
	"songvault/internal/database"
	. "songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/types"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

const maxAlbumNameLength = 255

// AlbumController manages albums owned by the calling user. Every lookup is
// scoped to the caller, so a foreign album behaves exactly like a missing one.
type AlbumController struct {
	albumRepo          repositories.AlbumRepository
	songRepo           repositories.SongRepository
	transactionService *services.TransactionService
	db                 database.DB
	log                logger.Logger
}

type AlbumControllerInterface interface {
	ListAlbums(ctx context.Context, user *User) ([]*Album, error)
	GetAlbum(ctx context.Context, user *User, albumID int) (*Album, error)
	CreateAlbum(ctx context.Context, user *User, request types.AlbumWriteRequest) (*Album, error)
	UpdateAlbum(
		ctx context.Context,
		user *User,
		albumID int,
		request types.AlbumWriteRequest,
		partial bool,
	) (*Album, error)
	DeleteAlbum(ctx context.Context, user *User, albumID int) error
	AddSong(ctx context.Context, user *User, albumID int, songID int) (string, error)
	RemoveSong(ctx context.Context, user *User, albumID int, songID int) (string, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AlbumControllerInterface {
	return &AlbumController{
		albumRepo:          repos.Album,
		songRepo:           repos.Song,
		transactionService: services.Transaction,
		db:                 db,
		log:                logger.New("albumController"),
	}
}

func (c *AlbumController) ListAlbums(ctx context.Context, user *User) ([]*Album, error) {
	log := c.log.TraceFromContext(ctx).Function("ListAlbums")

	albums, err := c.albumRepo.ListForUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to list albums", err, "userID", user.ID)
	}

	return albums, nil
}

func (c *AlbumController) GetAlbum(ctx context.Context, user *User, albumID int) (*Album, error) {
	return c.albumRepo.GetForUser(ctx, c.db.SQL, user.ID, albumID)
}

func (c *AlbumController) CreateAlbum(
	ctx context.Context,
	user *User,
	request types.AlbumWriteRequest,
) (*Album, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateAlbum")

	name, err := albumName(log, request.Name, true)
	if err != nil {
		return nil, err
	}

	album := &Album{Name: *name, UserID: user.ID}
	if err := c.albumRepo.Create(ctx, c.db.SQL, album); err != nil {
		return nil, log.Err("failed to create album", err, "userID", user.ID)
	}

	log.Info("Album created", "albumID", album.ID, "userID", user.ID)
	return album, nil
}

func (c *AlbumController) UpdateAlbum(
	ctx context.Context,
	user *User,
	albumID int,
	request types.AlbumWriteRequest,
	partial bool,
) (*Album, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateAlbum")

	name, err := albumName(log, request.Name, !partial)
	if err != nil {
		return nil, err
	}

	var album *Album
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		current, err := c.albumRepo.GetForUser(ctx, tx, user.ID, albumID)
		if err != nil {
			return err
		}

		if name != nil {
			current.Name = *name
			if err := c.albumRepo.Update(ctx, tx, current); err != nil {
				return err
			}
		}

		album = current
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to update album", err, "albumID", albumID)
	}

	return album, nil
}

func (c *AlbumController) DeleteAlbum(ctx context.Context, user *User, albumID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteAlbum")

	if err := c.albumRepo.Delete(ctx, c.db.SQL, user.ID, albumID); err != nil {
		return log.Err("failed to delete album", err, "albumID", albumID)
	}

	log.Info("Album deleted", "albumID", albumID, "userID", user.ID)
	return nil
}

func (c *AlbumController) AddSong(
	ctx context.Context,
	user *User,
	albumID int,
	songID int,
) (string, error) {
	log := c.log.TraceFromContext(ctx).Function("AddSong")

	album, song, err := c.resolve(ctx, user, albumID, songID)
	if err != nil {
		return "", err
	}

	added, err := c.albumRepo.AddSong(ctx, c.db.SQL, album.ID, song.ID)
	if err != nil {
		return "", log.Err("failed to add song to album", err, "albumID", albumID, "songID", songID)
	}
	if !added {
		return "", log.ErrorWithType(apperrors.ErrAlreadyMember, "Song already in album", "albumID", albumID, "songID", songID)
	}

	return fmt.Sprintf("Song '%s' added to album '%s'", song.Title, album.Name), nil
}

func (c *AlbumController) RemoveSong(
	ctx context.Context,
	user *User,
	albumID int,
	songID int,
) (string, error) {
	log := c.log.TraceFromContext(ctx).Function("RemoveSong")

	album, song, err := c.resolve(ctx, user, albumID, songID)
	if err != nil {
		return "", err
	}

	removed, err := c.albumRepo.RemoveSong(ctx, c.db.SQL, album.ID, song.ID)
	if err != nil {
		return "", log.Err("failed to remove song from album", err, "albumID", albumID, "songID", songID)
	}
	if !removed {
		return "", log.ErrorWithType(apperrors.ErrNotMember, "Song not in album", "albumID", albumID, "songID", songID)
	}

	return fmt.Sprintf("Song '%s' removed from album '%s'", song.Title, album.Name), nil
}

func (c *AlbumController) resolve(
	ctx context.Context,
	user *User,
	albumID int,
	songID int,
) (*Album, *Song, error) {
	album, err := c.albumRepo.GetForUser(ctx, c.db.SQL, user.ID, albumID)
	if err != nil {
		return nil, nil, err
	}

	song, err := c.songRepo.GetByID(ctx, c.db.SQL, songID)
	if err != nil {
		return nil, nil, err
	}

	return album, song, nil
}

func albumName(log logger.Logger, name *string, required bool) (*string, error) {
	if name == nil {
		if required {
			return nil, log.ErrorWithType(apperrors.ErrValidation, "Album name is required")
		}
		return nil, nil
	}

	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil, log.ErrorWithType(apperrors.ErrValidation, "Album name may not be blank")
	}
	if utf8.RuneCountInString(trimmed) > maxAlbumNameLength {
		return nil, log.ErrorWithType(apperrors.ErrValidation, "Album name is too long")
	}

	return &trimmed, nil
}
