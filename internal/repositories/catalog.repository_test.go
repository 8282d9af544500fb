package repositories_test

import (
	"context"
	"testing"

	"songvault/internal/apperrors"
	"songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenreRepository_UniqueName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	require.NoError(t, repos.Genre.Create(ctx, db.SQL, &models.Genre{Name: "Rock"}))

	err := repos.Genre.Create(ctx, db.SQL, &models.Genre{Name: "Rock"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	genres, err := repos.Genre.List(ctx, db.SQL)
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestGenreRepository_MissingIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)

	rock := testutil.CreateGenre(t, db, "Rock")

	missing, err := repos.Genre.MissingIDs(context.Background(), db.SQL, []int{rock.ID, 77})

	require.NoError(t, err)
	assert.Equal(t, []int{77}, missing)
}

func TestGenreRepository_DeleteDetachesSongs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	rock := testutil.CreateGenre(t, db, "Rock")
	song := testutil.CreateSong(t, db, "Riff", nil, rock)

	require.NoError(t, repos.Genre.Delete(ctx, db.SQL, rock.ID))

	reloaded, err := repos.Song.GetByID(ctx, db.SQL, song.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Genres)

	_, err = repos.Genre.GetByID(ctx, db.SQL, rock.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestArtistRepository_DeleteClearsSongReference(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	artist := testutil.CreateArtist(t, db, "Band")
	song := testutil.CreateSong(t, db, "Hit", artist)

	require.NoError(t, repos.Artist.Delete(ctx, db.SQL, artist.ID))

	reloaded, err := repos.Song.GetByID(ctx, db.SQL, song.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ArtistID)
	assert.Nil(t, reloaded.Artist)

	exists, err := repos.Artist.Exists(ctx, db.SQL, artist.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestArtistRepository_ListByArtist(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)

	artist := testutil.CreateArtist(t, db, "Band")
	testutil.CreateSong(t, db, "Old", artist)
	testutil.CreateSong(t, db, "Other", nil)
	testutil.CreateSong(t, db, "New", artist)

	songs, err := repos.Song.ListByArtist(context.Background(), db.SQL, artist.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"New", "Old"}, songTitles(songs))
	assert.Equal(t, "Band", songs[0].Artist.Name)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	require.NoError(t, repos.User.Create(ctx, db.SQL, &models.User{Username: "alice", PasswordHash: "x"}))

	err := repos.User.Create(ctx, db.SQL, &models.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestUserRepository_CreateRacingInsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	raced := false
	require.NoError(t, db.SQL.Callback().Create().Before("gorm:create").Register("test:racing_insert", func(tx *gorm.DB) {
		user, ok := tx.Statement.Dest.(*models.User)
		if !ok || raced {
			return
		}
		raced = true
		rival := &models.User{Username: user.Username, PasswordHash: "rival"}
		if err := db.SQL.Session(&gorm.Session{NewDB: true}).Create(rival).Error; err != nil {
			_ = tx.AddError(err)
		}
	}))

	err := repos.User.Create(ctx, db.SQL, &models.User{Username: "bob", PasswordHash: "x"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Equal(t, "Username already taken", apperrors.Message(err))

	var count int64
	require.NoError(t, db.SQL.Model(&models.User{}).Where("username = ?", "bob").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_GetByIDWithoutCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "alice", true)

	found, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.True(t, found.IsStaff)

	_, err = repos.User.GetByID(ctx, user.ID+50)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "leaving", true)
	other := testutil.CreateUser(t, db, "staying", false)
	album := testutil.CreateAlbum(t, db, user, "Mine")
	otherAlbum := testutil.CreateAlbum(t, db, other, "Theirs")

	song := &models.Song{Title: "Upload", AudioFile: "a.mp3", UploadedByID: &user.ID}
	require.NoError(t, repos.Song.Create(ctx, db.SQL, song))
	_, err := repos.Album.AddSong(ctx, db.SQL, album.ID, song.ID)
	require.NoError(t, err)
	_, err = repos.Album.AddSong(ctx, db.SQL, otherAlbum.ID, song.ID)
	require.NoError(t, err)
	_, err = repos.Favorite.Toggle(ctx, db.SQL, user.ID, song.ID)
	require.NoError(t, err)

	require.NoError(t, repos.User.Delete(ctx, db.SQL, user.ID))

	reloaded, err := repos.Song.GetByID(ctx, db.SQL, song.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.UploadedByID)

	_, err = repos.Album.GetForUser(ctx, db.SQL, user.ID, album.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	theirs, err := repos.Album.GetForUser(ctx, db.SQL, other.ID, otherAlbum.ID)
	require.NoError(t, err)
	assert.Len(t, theirs.Songs, 1)

	var favorites int64
	require.NoError(t, db.SQL.Model(&models.UserFavoriteSong{}).Where("user_id = ?", user.ID).Count(&favorites).Error)
	assert.Zero(t, favorites)

	assert.ErrorIs(t, repos.User.Delete(ctx, db.SQL, user.ID), apperrors.ErrNotFound)
}
