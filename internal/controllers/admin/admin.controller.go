package adminController

import (
	"context"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"songvault/internal/apperrors"
	"songvault/internal/database"
	"songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/types"
	"songvault/pkg/logger"
)

// SongUploads carries the files sent with a multipart song write. A file
// takes precedence over the stored path in the write request.
type SongUploads struct {
	AudioFile  *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

type AdminControllerInterface interface {
	ListSongs(ctx context.Context, user *models.User) ([]*models.Song, error)
	GetSong(ctx context.Context, user *models.User, songID int) (*models.Song, error)
	CreateSong(
		ctx context.Context,
		user *models.User,
		request types.SongWriteRequest,
		uploads SongUploads,
	) (*models.Song, error)
	UpdateSong(
		ctx context.Context,
		user *models.User,
		songID int,
		request types.SongWriteRequest,
		uploads SongUploads,
		partial bool,
	) (*models.Song, error)
	DeleteSong(ctx context.Context, user *models.User, songID int) error

	ListArtists(ctx context.Context, user *models.User) ([]*models.Artist, error)
	GetArtist(ctx context.Context, user *models.User, artistID int) (*models.Artist, error)
	CreateArtist(
		ctx context.Context,
		user *models.User,
		request types.ArtistWriteRequest,
		image *multipart.FileHeader,
	) (*models.Artist, error)
	UpdateArtist(
		ctx context.Context,
		user *models.User,
		artistID int,
		request types.ArtistWriteRequest,
		image *multipart.FileHeader,
		partial bool,
	) (*models.Artist, error)
	DeleteArtist(ctx context.Context, user *models.User, artistID int) error

	ListGenres(ctx context.Context, user *models.User) ([]*models.Genre, error)
	GetGenre(ctx context.Context, user *models.User, genreID int) (*models.Genre, error)
	CreateGenre(ctx context.Context, user *models.User, request types.GenreWriteRequest) (*models.Genre, error)
	UpdateGenre(
		ctx context.Context,
		user *models.User,
		genreID int,
		request types.GenreWriteRequest,
		partial bool,
	) (*models.Genre, error)
	DeleteGenre(ctx context.Context, user *models.User, genreID int) error
}

// AdminController runs catalog maintenance for staff users
type AdminController struct {
	songRepo           repositories.SongRepository
	artistRepo         repositories.ArtistRepository
	genreRepo          repositories.GenreRepository
	transactionService *services.TransactionService
	mediaService       *services.MediaService
	cacheInvalidation  *services.CacheInvalidationService
	db                 database.DB
	log                logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		songRepo:           repos.Song,
		artistRepo:         repos.Artist,
		genreRepo:          repos.Genre,
		transactionService: services.Transaction,
		mediaService:       services.Media,
		cacheInvalidation:  services.CacheInvalidation,
		db:                 db,
		log:                logger.New("adminController"),
	}
}

func (c *AdminController) requireStaff(ctx context.Context, user *models.User) error {
	if user == nil || !user.IsStaff {
		return c.log.TraceFromContext(ctx).
			Function("requireStaff").
			ErrorWithType(apperrors.ErrForbidden, "Staff access required")
	}
	return nil
}

func (c *AdminController) invalidate(ctx context.Context, resource services.CacheResource, id int) {
	if err := c.cacheInvalidation.Invalidate(ctx, resource, id); err != nil {
		c.log.TraceFromContext(ctx).Function("invalidate").Warn(
			"failed to invalidate cache", "resource", resource, "id", id, "error", err,
		)
	}
}

// requiredText trims a field that must be present on create and full
// updates. Nil means "leave unchanged" on partial updates.
func requiredText(log logger.Logger, field string, value *string, required bool, maxLength int) (*string, error) {
	if value == nil {
		if required {
			return nil, log.ErrorWithType(apperrors.ErrValidation, field+" is required")
		}
		return nil, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, log.ErrorWithType(apperrors.ErrValidation, field+" may not be blank")
	}
	if maxLength > 0 && utf8.RuneCountInString(trimmed) > maxLength {
		return nil, log.ErrorWithType(apperrors.ErrValidation, field+" is too long")
	}

	return &trimmed, nil
}
