package authController_test

import (
	"context"
	"strings"
	"testing"

	"songvault/internal/apperrors"
	"songvault/internal/testutil"
	"songvault/internal/testutil/testapp"
	"songvault/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	auth := app.Controllers.Auth

	creds, err := auth.Register(ctx, types.RegisterRequest{
		Username: "newcomer",
		Email:    "new@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, creds.Access)
	assert.NotEmpty(t, creds.Refresh)
	assert.Equal(t, creds.UserID, creds.User.ID)
	assert.Equal(t, "newcomer", creds.User.Username)
	assert.False(t, creds.User.IsStaff)

	_, err = auth.Register(ctx, types.RegisterRequest{Username: "newcomer", Password: "another"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Equal(t, "Username already taken", apperrors.Message(err))

	loggedIn, err := auth.Login(ctx, types.LoginRequest{Username: "newcomer", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, creds.UserID, loggedIn.UserID)

	user, err := app.Repos.User.GetByID(ctx, creds.UserID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
}

func TestRegisterValidation(t *testing.T) {
	app := testapp.New(t)

	for name, request := range map[string]types.RegisterRequest{
		"blank username": {Username: "  ", Password: "pw"},
		"no password":    {Username: "someone"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := app.Controllers.Auth.Register(context.Background(), request)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestLoginFailures(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	testutil.CreateUser(t, app.DB, "member", false)

	for name, request := range map[string]types.LoginRequest{
		"wrong password": {Username: "member", Password: "nope"},
		"unknown user":   {Username: "ghost", Password: "password-ghost"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := app.Controllers.Auth.Login(ctx, request)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, "Invalid credentials", apperrors.Message(err))
		})
	}

	_, err := app.Controllers.Auth.Login(ctx, types.LoginRequest{Username: "member", Password: "password-member"})
	assert.NoError(t, err)
}

func TestRefreshRotatesSession(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	testutil.CreateUser(t, app.DB, "member", false)

	first, err := app.Controllers.Auth.Login(ctx, types.LoginRequest{Username: "member", Password: "password-member"})
	require.NoError(t, err)

	second, err := app.Controllers.Auth.Refresh(ctx, types.RefreshRequest{Refresh: first.Refresh})
	require.NoError(t, err)
	assert.NotEqual(t, first.Refresh, second.Refresh)

	_, err = app.Controllers.Auth.Refresh(ctx, types.RefreshRequest{Refresh: first.Refresh})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	assert.ErrorIs(t, app.Controllers.Auth.Verify(ctx, types.VerifyRequest{Token: first.Access}), apperrors.ErrUnauthorized)
	assert.NoError(t, app.Controllers.Auth.Verify(ctx, types.VerifyRequest{Token: second.Access}))

	_, err = app.Controllers.Auth.Refresh(ctx, types.RefreshRequest{Refresh: second.Access})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogoutEndsSession(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, app.DB, "member", false)

	creds, err := app.Controllers.Auth.Login(ctx, types.LoginRequest{Username: "member", Password: "password-member"})
	require.NoError(t, err)

	claims, err := app.Services.Token.Authenticate(ctx, creds.Access)
	require.NoError(t, err)

	require.NoError(t, app.Controllers.Auth.Logout(ctx, user, claims.SessionID()))

	_, err = app.Services.Token.Authenticate(ctx, creds.Access)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestProfileIncludesFavorites(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, app.DB, "member", false)
	song := testutil.CreateSong(t, app.DB, "Favorite Thing", nil)

	_, err := app.Controllers.Song.ToggleFavorite(ctx, user, song.ID)
	require.NoError(t, err)

	profile, favorites, err := app.Controllers.Auth.Profile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	require.Len(t, favorites, 1)
	assert.Equal(t, song.ID, favorites[0].ID)
}

func TestRegister_UsernameLengthCountsCharacters(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()

	username := strings.Repeat("ü", 150)
	creds, err := app.Controllers.Auth.Register(ctx, types.RegisterRequest{Username: username, Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, username, creds.User.Username)

	_, err = app.Controllers.Auth.Register(ctx, types.RegisterRequest{Username: username + "ü", Password: "pw"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
