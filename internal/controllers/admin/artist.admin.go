package adminController

import (
	"context"
	"mime/multipart"

	"songvault/internal/apperrors"
	"songvault/internal/models"
	"songvault/internal/services"
	"songvault/internal/types"
)

const maxArtistNameLength = 255

func (c *AdminController) ListArtists(ctx context.Context, user *models.User) ([]*models.Artist, error) {
	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}
	return c.artistRepo.List(ctx, c.db.SQL)
}

func (c *AdminController) GetArtist(ctx context.Context, user *models.User, artistID int) (*models.Artist, error) {
	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}
	return c.artistRepo.GetByID(ctx, c.db.SQL, artistID)
}

func (c *AdminController) CreateArtist(
	ctx context.Context,
	user *models.User,
	request types.ArtistWriteRequest,
	image *multipart.FileHeader,
) (*models.Artist, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateArtist")

	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}

	artist := &models.Artist{}
	saved, err := c.applyArtist(ctx, artist, request, image, true)
	if err != nil {
		return nil, err
	}

	if err := c.artistRepo.Create(ctx, c.db.SQL, artist); err != nil {
		c.discard(ctx, saved)
		return nil, log.Err("failed to create artist", err, "name", artist.Name)
	}

	c.invalidate(ctx, services.ArtistResource, artist.ID)
	return artist, nil
}

func (c *AdminController) UpdateArtist(
	ctx context.Context,
	user *models.User,
	artistID int,
	request types.ArtistWriteRequest,
	image *multipart.FileHeader,
	partial bool,
) (*models.Artist, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateArtist")

	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}

	artist, err := c.artistRepo.GetByID(ctx, c.db.SQL, artistID)
	if err != nil {
		return nil, err
	}

	saved, err := c.applyArtist(ctx, artist, request, image, !partial)
	if err != nil {
		return nil, err
	}

	if err := c.artistRepo.Update(ctx, c.db.SQL, artist); err != nil {
		c.discard(ctx, saved)
		return nil, log.Err("failed to update artist", err, "artistID", artistID)
	}

	c.invalidate(ctx, services.ArtistResource, artist.ID)
	return artist, nil
}

// DeleteArtist keeps the artist's songs; their artist reference is cleared
func (c *AdminController) DeleteArtist(ctx context.Context, user *models.User, artistID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteArtist")

	if err := c.requireStaff(ctx, user); err != nil {
		return err
	}

	if err := c.artistRepo.Delete(ctx, c.db.SQL, artistID); err != nil {
		return log.Err("failed to delete artist", err, "artistID", artistID)
	}

	c.invalidate(ctx, services.ArtistResource, artistID)
	return nil
}

func (c *AdminController) applyArtist(
	ctx context.Context,
	artist *models.Artist,
	request types.ArtistWriteRequest,
	image *multipart.FileHeader,
	required bool,
) ([]string, error) {
	log := c.log.TraceFromContext(ctx).Function("applyArtist")

	name, err := requiredText(log, "Name", request.Name, required, maxArtistNameLength)
	if err != nil {
		return nil, err
	}

	if image == nil && request.Image.Valid {
		if err := models.ValidateImageFile(request.Image.Value); err != nil {
			return nil, log.ErrorWithType(apperrors.ErrValidation, err.Error(), "image", request.Image.Value)
		}
	}

	var saved []string
	if image != nil {
		path, err := c.mediaService.Save(ctx, services.MediaArtistImage, image)
		if err != nil {
			return nil, err
		}
		saved = append(saved, path)
		artist.Image = &path
	} else if request.Image.Set {
		artist.Image = request.Image.Ptr()
	}

	if name != nil {
		artist.Name = *name
	}
	if request.Bio != nil {
		artist.Bio = *request.Bio
	}

	return saved, nil
}
