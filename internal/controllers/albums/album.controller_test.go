package albumController_test

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

func ptr[T any](v T) *T { return &v }

func TestAlbumFlow_AddAddRemoveRemove(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	albums := app.Controllers.Album

	user := testutil.CreateUser(t, app.DB, "traveller", false)
	song := testutil.CreateSong(t, app.DB, "Highway Tune", nil)

	album, err := albums.CreateAlbum(ctx, user, types.AlbumWriteRequest{Name: ptr("Road Trip")})
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", album.Name)
	assert.Empty(t, album.Songs)

	message, err := albums.AddSong(ctx, user, album.ID, song.ID)
	require.NoError(t, err)
	assert.Equal(t, "Song 'Highway Tune' added to album 'Road Trip'", message)

	_, err = albums.AddSong(ctx, user, album.ID, song.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)
	assert.Equal(t, "Song already in album", apperrors.Message(err))

	loaded, err := albums.GetAlbum(ctx, user, album.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Songs, 1)
	assert.Equal(t, song.ID, loaded.Songs[0].ID)

	message, err = albums.RemoveSong(ctx, user, album.ID, song.ID)
	require.NoError(t, err)
	assert.Equal(t, "Song 'Highway Tune' removed from album 'Road Trip'", message)

	_, err = albums.RemoveSong(ctx, user, album.ID, song.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotMember)
	assert.Equal(t, "Song not in album", apperrors.Message(err))

	loaded, err = albums.GetAlbum(ctx, user, album.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Songs)
}

func TestAlbum_ForeignAlbumLooksMissing(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	albums := app.Controllers.Album

	owner := testutil.CreateUser(t, app.DB, "owner", false)
	intruder := testutil.CreateUser(t, app.DB, "intruder", true)
	album := testutil.CreateAlbum(t, app.DB, owner, "Private")
	song := testutil.CreateSong(t, app.DB, "Secret", nil)

	_, foreignErr := albums.GetAlbum(ctx, intruder, album.ID)
	_, missingErr := albums.GetAlbum(ctx, intruder, album.ID+100)

	require.ErrorIs(t, foreignErr, apperrors.ErrNotFound)
	require.ErrorIs(t, missingErr, apperrors.ErrNotFound)
	assert.Equal(t, apperrors.Message(missingErr), apperrors.Message(foreignErr))

	_, err := albums.AddSong(ctx, intruder, album.ID, song.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = albums.UpdateAlbum(ctx, intruder, album.ID, types.AlbumWriteRequest{Name: ptr("Mine")}, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, albums.DeleteAlbum(ctx, intruder, album.ID), apperrors.ErrNotFound)

	list, err := albums.ListAlbums(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := albums.GetAlbum(ctx, owner, album.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", kept.Name)
}

func TestAlbum_AddMissingSong(t *testing.T) {
	app := testapp.New(t)
	user := testutil.CreateUser(t, app.DB, "listener", false)
	album := testutil.CreateAlbum(t, app.DB, user, "Mix")

	_, err := app.Controllers.Album.AddSong(context.Background(), user, album.ID, 999)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Song not found", apperrors.Message(err))
}

func TestAlbum_UpdateValidation(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	albums := app.Controllers.Album
	user := testutil.CreateUser(t, app.DB, "editor", false)
	album := testutil.CreateAlbum(t, app.DB, user, "Draft")

	_, err := albums.UpdateAlbum(ctx, user, album.ID, types.AlbumWriteRequest{}, false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = albums.UpdateAlbum(ctx, user, album.ID, types.AlbumWriteRequest{Name: ptr("   ")}, true)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	unchanged, err := albums.UpdateAlbum(ctx, user, album.ID, types.AlbumWriteRequest{}, true)
	require.NoError(t, err)
	assert.Equal(t, "Draft", unchanged.Name)

	renamed, err := albums.UpdateAlbum(ctx, user, album.ID, types.AlbumWriteRequest{Name: ptr(" Final ")}, false)
	require.NoError(t, err)
	assert.Equal(t, "Final", renamed.Name)

	_, err = albums.CreateAlbum(ctx, user, types.AlbumWriteRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAlbum_DeleteKeepsSongs(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, app.DB, "cleaner", false)
	album := testutil.CreateAlbum(t, app.DB, user, "Old")
	song := testutil.CreateSong(t, app.DB, "Survivor", nil)

	_, err := app.Controllers.Album.AddSong(ctx, user, album.ID, song.ID)
	require.NoError(t, err)

	require.NoError(t, app.Controllers.Album.DeleteAlbum(ctx, user, album.ID))

	_, err = app.Controllers.Album.GetAlbum(ctx, user, album.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = app.Controllers.Song.GetSong(ctx, song.ID)
	assert.NoError(t, err)
}

func TestAlbum_NameLengthCountsCharacters(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, app.DB, "collector", false)

	longest := strings.Repeat("é", 255)
	album, err := app.Controllers.Album.CreateAlbum(ctx, user, types.AlbumWriteRequest{Name: ptr(longest)})
	require.NoError(t, err)
	assert.Equal(t, longest, album.Name)

	_, err = app.Controllers.Album.CreateAlbum(ctx, user, types.AlbumWriteRequest{Name: ptr(longest + "é")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
