package adminController_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"songvault/internal/apperrors"
	adminController "songvault/internal/controllers/admin"
	"songvault/internal/models"
	"songvault/internal/testutil"
	"songvault/internal/testutil/testapp"
	"songvault/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("upload", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["upload"][0]
}

func genreNames(song *models.Song) []string {
	names := make([]string, 0, len(song.Genres))
	for _, genre := range song.Genres {
		names = append(names, genre.Name)
	}
	return names
}

func TestAdmin_NonStaffForbidden(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, app.DB, "regular", false)

	_, err := app.Controllers.Admin.CreateSong(ctx, user, types.SongWriteRequest{
		Title:     ptr("Sneaky"),
		AudioFile: ptr("songs/sneaky.mp3"),
	}, adminController.SongUploads{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = app.Controllers.Admin.CreateGenre(ctx, user, types.GenreWriteRequest{Name: ptr("Noise")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.ErrorIs(t, app.Controllers.Admin.DeleteArtist(ctx, user, 1), apperrors.ErrForbidden)

	songs, err := app.Controllers.Song.ListSongs(ctx)
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestAdmin_CreateSongSetsUploader(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	staff := testutil.CreateUser(t, app.DB, "curator", true)
	artist := testutil.CreateArtist(t, app.DB, "Composer")
	pop := testutil.CreateGenre(t, app.DB, "Pop")
	rock := testutil.CreateGenre(t, app.DB, "Rock")

	song, err := app.Controllers.Admin.CreateSong(ctx, staff, types.SongWriteRequest{
		Title:    ptr("New Single"),
		Lyrics:   ptr("la la"),
		ArtistID: types.Some(artist.ID),
		GenreIDs: &[]int{rock.ID, pop.ID, rock.ID},
	}, adminController.SongUploads{
		AudioFile:  fileHeader(t, "single.mp3"),
		CoverImage: fileHeader(t, "cover.png"),
	})
	require.NoError(t, err)

	require.NotNil(t, song.UploadedByID)
	assert.Equal(t, staff.ID, *song.UploadedByID)
	require.NotNil(t, song.Artist)
	assert.Equal(t, "Composer", song.Artist.Name)
	assert.Equal(t, []string{"Pop", "Rock"}, genreNames(song))
	assert.True(t, strings.HasPrefix(song.AudioFile, "songs/"))
	require.NotNil(t, song.CoverImage)
	assert.True(t, strings.HasPrefix(*song.CoverImage, "covers/"))
}

func TestAdmin_CreateSongValidation(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	staff := testutil.CreateUser(t, app.DB, "curator", true)

	tests := []struct {
		name    string
		request types.SongWriteRequest
		uploads adminController.SongUploads
	}{
		{
			name:    "missing title",
			request: types.SongWriteRequest{AudioFile: ptr("songs/a.mp3")},
		},
		{
			name:    "missing audio",
			request: types.SongWriteRequest{Title: ptr("Silent")},
		},
		{
			name:    "audio path not mp3",
			request: types.SongWriteRequest{Title: ptr("Wave"), AudioFile: ptr("songs/a.wav")},
		},
		{
			name:    "uploaded audio not mp3",
			request: types.SongWriteRequest{Title: ptr("Flac")},
			uploads: adminController.SongUploads{AudioFile: fileHeader(t, "track.flac")},
		},
		{
			name: "cover not an image",
			request: types.SongWriteRequest{
				Title:      ptr("Cover"),
				AudioFile:  ptr("songs/a.mp3"),
				CoverImage: types.Some("covers/a.txt"),
			},
		},
		{
			name: "unknown artist",
			request: types.SongWriteRequest{
				Title:     ptr("Orphan"),
				AudioFile: ptr("songs/a.mp3"),
				ArtistID:  types.Some(999),
			},
		},
		{
			name: "unknown genre",
			request: types.SongWriteRequest{
				Title:     ptr("Lost"),
				AudioFile: ptr("songs/a.mp3"),
				GenreIDs:  &[]int{999},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Controllers.Admin.CreateSong(ctx, staff, tt.request, tt.uploads)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	songs, err := app.Controllers.Song.ListSongs(ctx)
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestAdmin_UpdateSongGenres(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	staff := testutil.CreateUser(t, app.DB, "curator", true)
	pop := testutil.CreateGenre(t, app.DB, "Pop")
	artist := testutil.CreateArtist(t, app.DB, "Singer")
	song := testutil.CreateSong(t, app.DB, "Hit", artist, pop)

	updated, err := app.Controllers.Admin.UpdateSong(ctx, staff, song.ID, types.SongWriteRequest{
		Title: ptr("Hit (Remastered)"),
	}, adminController.SongUploads{}, true)
	require.NoError(t, err)
	assert.Equal(t, "Hit (Remastered)", updated.Title)
	assert.Equal(t, []string{"Pop"}, genreNames(updated))
	require.NotNil(t, updated.ArtistID)
	assert.Equal(t, song.CreatedAt.Unix(), updated.CreatedAt.Unix())

	cleared, err := app.Controllers.Admin.UpdateSong(ctx, staff, song.ID, types.SongWriteRequest{
		GenreIDs: &[]int{},
		ArtistID: types.Null[int](),
	}, adminController.SongUploads{}, true)
	require.NoError(t, err)
	assert.Empty(t, cleared.Genres)
	assert.Nil(t, cleared.ArtistID)
	assert.Nil(t, cleared.Artist)

	_, err = app.Controllers.Admin.UpdateSong(ctx, staff, song.ID, types.SongWriteRequest{
		Title: ptr("Only Title"),
	}, adminController.SongUploads{}, false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = app.Controllers.Admin.UpdateSong(ctx, staff, 999, types.SongWriteRequest{}, adminController.SongUploads{}, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdmin_ArtistLifecycle(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	staff := testutil.CreateUser(t, app.DB, "curator", true)

	artist, err := app.Controllers.Admin.CreateArtist(ctx, staff, types.ArtistWriteRequest{
		Name: ptr("Painter"),
		Bio:  ptr("Paints with sound"),
	}, fileHeader(t, "portrait.jpg"))
	require.NoError(t, err)
	require.NotNil(t, artist.Image)
	assert.True(t, strings.HasPrefix(*artist.Image, "artists/"))

	_, err = app.Controllers.Admin.CreateArtist(ctx, staff, types.ArtistWriteRequest{Name: ptr("Bad")}, fileHeader(t, "portrait.mp3"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	song := testutil.CreateSong(t, app.DB, "Canvas", artist)

	updated, err := app.Controllers.Admin.UpdateArtist(ctx, staff, artist.ID, types.ArtistWriteRequest{
		Image: types.Null[string](),
	}, nil, true)
	require.NoError(t, err)
	assert.Nil(t, updated.Image)
	assert.Equal(t, "Painter", updated.Name)

	require.NoError(t, app.Controllers.Admin.DeleteArtist(ctx, staff, artist.ID))

	kept, err := app.Controllers.Song.GetSong(ctx, song.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.ArtistID)

	assert.ErrorIs(t, app.Controllers.Admin.DeleteArtist(ctx, staff, artist.ID), apperrors.ErrNotFound)
}

func TestAdmin_GenreLifecycle(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	staff := testutil.CreateUser(t, app.DB, "curator", true)

	genre, err := app.Controllers.Admin.CreateGenre(ctx, staff, types.GenreWriteRequest{Name: ptr("Ambient")})
	require.NoError(t, err)

	_, err = app.Controllers.Admin.CreateGenre(ctx, staff, types.GenreWriteRequest{Name: ptr("Ambient")})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	listed, err := app.Controllers.Catalog.ListGenres(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	updated, err := app.Controllers.Admin.UpdateGenre(ctx, staff, genre.ID, types.GenreWriteRequest{
		Description: ptr("Soft textures"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "Ambient", updated.Name)
	assert.Equal(t, "Soft textures", updated.Description)

	_, err = app.Controllers.Admin.UpdateGenre(ctx, staff, genre.ID, types.GenreWriteRequest{}, false)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	song := testutil.CreateSong(t, app.DB, "Drift", nil, genre)
	require.NoError(t, app.Controllers.Admin.DeleteGenre(ctx, staff, genre.ID))

	kept, err := app.Controllers.Song.GetSong(ctx, song.ID)
	require.NoError(t, err)
	assert.Empty(t, kept.Genres)
}

func TestAdmin_NameLengthCountsCharacters(t *testing.T) {
	app := testapp.New(t)
	ctx := context.Background()
	staff := testutil.CreateUser(t, app.DB, "curator", true)

	name := strings.Repeat("ß", 255)
	genre, err := app.Controllers.Admin.CreateGenre(ctx, staff, types.GenreWriteRequest{Name: ptr(name)})
	require.NoError(t, err)
	assert.Equal(t, name, genre.Name)

	_, err = app.Controllers.Admin.CreateArtist(ctx, staff, types.ArtistWriteRequest{Name: ptr(name + "ß")}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
