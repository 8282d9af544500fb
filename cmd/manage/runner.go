package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"songvault/internal/database"
	"songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/pkg/logger"

	"github.com/urfave/cli/v3"
)

type orphanRemover interface {
	RemoveOrphans(ctx context.Context) (int, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, resource services.CacheResource, id int) error
}

type RunnerConfig struct {
	DB           database.DB
	Repos        repositories.Repository
	Cleanup      orphanRemover
	Invalidation cacheInvalidator
	Out          io.Writer
}

// Runner backs the operator commands that have no HTTP surface
type Runner struct {
	db           database.DB
	repos        repositories.Repository
	cleanup      orphanRemover
	invalidation cacheInvalidator
	out          io.Writer
	log          logger.Logger
}

func NewRunner(config RunnerConfig) *Runner {
	return &Runner{
		db:           config.DB,
		repos:        config.Repos,
		cleanup:      config.Cleanup,
		invalidation: config.Invalidation,
		out:          config.Out,
		log:          logger.New("manage"),
	}
}

func (r *Runner) writeln(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Runner) CreateUser(ctx context.Context, cmd *cli.Command) error {
	log := r.log.Function("CreateUser")

	username := strings.TrimSpace(cmd.String("username"))
	if username == "" {
		return log.ErrMsg("username is required")
	}

	user := &models.User{
		Username: username,
		Email:    cmd.String("email"),
		IsStaff:  cmd.Bool("staff"),
		IsActive: true,
	}
	if err := user.SetPassword(cmd.String("password")); err != nil {
		return log.Err("failed to hash password", err)
	}

	if err := r.repos.User.Create(ctx, r.db.SQLWithContext(ctx), user); err != nil {
		return err
	}

	r.writeln("created user %s (id %d, staff %t)", user.Username, user.ID, user.IsStaff)
	return nil
}

func (r *Runner) SetStaff(ctx context.Context, cmd *cli.Command) error {
	return r.updateUser(ctx, cmd.String("username"), func(user *models.User) {
		user.IsStaff = !cmd.Bool("revoke")
	})
}

func (r *Runner) SetActive(ctx context.Context, cmd *cli.Command) error {
	return r.updateUser(ctx, cmd.String("username"), func(user *models.User) {
		user.IsActive = !cmd.Bool("deactivate")
	})
}

func (r *Runner) SetPassword(ctx context.Context, cmd *cli.Command) error {
	var hashErr error
	err := r.updateUser(ctx, cmd.String("username"), func(user *models.User) {
		hashErr = user.SetPassword(cmd.String("password"))
	})
	if hashErr != nil {
		return r.log.Function("SetPassword").Err("failed to hash password", hashErr)
	}
	return err
}

func (r *Runner) DeleteUser(ctx context.Context, cmd *cli.Command) error {
	tx := r.db.SQLWithContext(ctx)
	user, err := r.repos.User.GetByUsername(ctx, tx, cmd.String("username"))
	if err != nil {
		return err
	}

	if err := r.repos.User.Delete(ctx, tx, user.ID); err != nil {
		return err
	}

	if err := r.invalidation.Invalidate(ctx, services.UserResource, user.ID); err != nil {
		return err
	}

	r.writeln("deleted user %s", user.Username)
	return nil
}

func (r *Runner) CleanupMedia(ctx context.Context, cmd *cli.Command) error {
	removed, err := r.cleanup.RemoveOrphans(ctx)
	if err != nil {
		return err
	}

	r.writeln("removed %d orphaned media files", removed)
	return nil
}

func (r *Runner) updateUser(ctx context.Context, username string, apply func(*models.User)) error {
	tx := r.db.SQLWithContext(ctx)
	user, err := r.repos.User.GetByUsername(ctx, tx, username)
	if err != nil {
		return err
	}

	apply(user)
	if err := r.repos.User.Update(ctx, tx, user); err != nil {
		return err
	}

	if err := r.invalidation.Invalidate(ctx, services.UserResource, user.ID); err != nil {
		return err
	}

	r.writeln("updated user %s (staff %t, active %t)", user.Username, user.IsStaff, user.IsActive)
	return nil
}
