package adminController

import (
	"context"

	"songvault/internal/models"
	"songvault/internal/services"
	"songvault/internal/types"
)

const maxGenreNameLength = 255

func (c *AdminController) ListGenres(ctx context.Context, user *models.User) ([]*models.Genre, error) {
	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}
	return c.genreRepo.List(ctx, c.db.SQL)
}

func (c *AdminController) GetGenre(ctx context.Context, user *models.User, genreID int) (*models.Genre, error) {
	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}
	return c.genreRepo.GetByID(ctx, c.db.SQL, genreID)
}

func (c *AdminController) CreateGenre(
	ctx context.Context,
	user *models.User,
	request types.GenreWriteRequest,
) (*models.Genre, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateGenre")

	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}

	name, err := requiredText(log, "Name", request.Name, true, maxGenreNameLength)
	if err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: *name}
	if request.Description != nil {
		genre.Description = *request.Description
	}

	if err := c.genreRepo.Create(ctx, c.db.SQL, genre); err != nil {
		return nil, log.Err("failed to create genre", err, "name", genre.Name)
	}

	c.invalidate(ctx, services.GenreResource, genre.ID)
	return genre, nil
}

func (c *AdminController) UpdateGenre(
	ctx context.Context,
	user *models.User,
	genreID int,
	request types.GenreWriteRequest,
	partial bool,
) (*models.Genre, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateGenre")

	if err := c.requireStaff(ctx, user); err != nil {
		return nil, err
	}

	name, err := requiredText(log, "Name", request.Name, !partial, maxGenreNameLength)
	if err != nil {
		return nil, err
	}

	genre, err := c.genreRepo.GetByID(ctx, c.db.SQL, genreID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		genre.Name = *name
	}
	if request.Description != nil {
		genre.Description = *request.Description
	}

	if err := c.genreRepo.Update(ctx, c.db.SQL, genre); err != nil {
		return nil, log.Err("failed to update genre", err, "genreID", genreID)
	}

	c.invalidate(ctx, services.GenreResource, genre.ID)
	return genre, nil
}

// DeleteGenre removes the genre from every song before deleting it
func (c *AdminController) DeleteGenre(ctx context.Context, user *models.User, genreID int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteGenre")

	if err := c.requireStaff(ctx, user); err != nil {
		return err
	}

	if err := c.genreRepo.Delete(ctx, c.db.SQL, genreID); err != nil {
		return log.Err("failed to delete genre", err, "genreID", genreID)
	}

	c.invalidate(ctx, services.GenreResource, genreID)
	return nil
}
