package authController

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"songvault/internal/apperrors"
	"songvault/internal/database"
	"songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/services"
	"songvault/internal/types"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

const maxUsernameLength = 150

type AuthController struct {
	tokenService       *services.TokenService
	transactionService *services.TransactionService
	userRepo           repositories.UserRepository
	favoriteRepo       repositories.FavoriteRepository
	db                 database.DB
	log                logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request types.RegisterRequest) (*types.CredentialResponse, error)
	Login(ctx context.Context, request types.LoginRequest) (*types.CredentialResponse, error)
	Refresh(ctx context.Context, request types.RefreshRequest) (*types.CredentialResponse, error)
	Verify(ctx context.Context, request types.VerifyRequest) error
	Logout(ctx context.Context, user *models.User, sessionID string) error
	Profile(ctx context.Context, user *models.User) (*models.User, []*models.Song, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		tokenService:       services.Token,
		transactionService: services.Transaction,
		userRepo:           repos.User,
		favoriteRepo:       repos.Favorite,
		db:                 db,
		log:                logger.New("authController"),
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	request types.RegisterRequest,
) (*types.CredentialResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Register")

	username := strings.TrimSpace(request.Username)
	switch {
	case username == "":
		return nil, log.ErrorWithType(apperrors.ErrValidation, "Username is required")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return nil, log.ErrorWithType(apperrors.ErrValidation, "Username is too long", "length", utf8.RuneCountInString(username))
	case request.Password == "":
		return nil, log.ErrorWithType(apperrors.ErrValidation, "Password is required")
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(request.Email),
		IsActive: true,
	}
	if err := user.SetPassword(request.Password); err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, log.Err("failed to register user", err, "username", username)
	}

	log.Info("User registered", "userID", user.ID)
	return c.issue(ctx, user)
}

func (c *AuthController) Login(
	ctx context.Context,
	request types.LoginRequest,
) (*types.CredentialResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	user, err := c.userRepo.GetByUsername(ctx, c.db.SQL, strings.TrimSpace(request.Username))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, log.Err("failed to look up user", err)
	}
	if user == nil || !user.IsActive || !user.CheckPassword(request.Password) {
		return nil, log.ErrorWithType(apperrors.ErrValidation, "Invalid credentials", "username", request.Username)
	}

	user.MarkLogin()
	if err := c.userRepo.Update(ctx, c.db.SQL, user); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	return c.issue(ctx, user)
}

// Refresh rotates the session: the presented refresh token stops working
// once a new pair has been issued.
func (c *AuthController) Refresh(
	ctx context.Context,
	request types.RefreshRequest,
) (*types.CredentialResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Refresh")

	claims, err := c.tokenService.ValidateRefresh(ctx, request.Refresh)
	if err != nil {
		return nil, err
	}

	user, err := c.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, log.ErrorWithType(apperrors.ErrUnauthorized, "User is no longer active", "userID", claims.UserID)
	}

	if err := c.tokenService.Revoke(ctx, claims.SessionID()); err != nil {
		return nil, log.Err("failed to revoke previous session", err)
	}

	return c.issue(ctx, user)
}

func (c *AuthController) Verify(ctx context.Context, request types.VerifyRequest) error {
	_, err := c.tokenService.Verify(ctx, request.Token)
	return err
}

func (c *AuthController) Logout(ctx context.Context, user *models.User, sessionID string) error {
	log := c.log.TraceFromContext(ctx).Function("Logout")

	if err := c.tokenService.Revoke(ctx, sessionID); err != nil {
		return log.Err("failed to end session", err, "userID", user.ID)
	}

	log.Info("User logged out", "userID", user.ID)
	return nil
}

func (c *AuthController) Profile(
	ctx context.Context,
	user *models.User,
) (*models.User, []*models.Song, error) {
	log := c.log.TraceFromContext(ctx).Function("Profile")

	favorites, err := c.favoriteRepo.ListSongs(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, nil, log.Err("failed to load favorite songs", err, "userID", user.ID)
	}

	return user, favorites, nil
}

func (c *AuthController) issue(ctx context.Context, user *models.User) (*types.CredentialResponse, error) {
	pair, err := c.tokenService.Issue(ctx, user)
	if err != nil {
		return nil, c.log.Function("issue").Err("failed to issue tokens", err, "userID", user.ID)
	}

	return &types.CredentialResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		UserID:  user.ID,
		User:    types.NewUserIdentity(user),
	}, nil
}
