package repositories_test

import (
	"context"
	"testing"

	"songvault/internal/models"
	"songvault/internal/repositories"
	"songvault/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func isFavorite(db *gorm.DB, userID, songID int) (bool, error) {
	var count int64
	err := db.Model(&models.UserFavoriteSong{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error
	return count > 0, err
}

func TestFavoriteRepository_ToggleTwiceRestoresState(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "alice", false)
	song := testutil.CreateSong(t, db, "Love Story", nil)

	before, err := isFavorite(db.SQL, user.ID, song.ID)
	require.NoError(t, err)
	require.False(t, before)

	first, err := repos.Favorite.Toggle(ctx, db.SQL, user.ID, song.ID)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repos.Favorite.Toggle(ctx, db.SQL, user.ID, song.ID)
	require.NoError(t, err)
	assert.False(t, second)
	assert.NotEqual(t, first, second)

	after, err := isFavorite(db.SQL, user.ID, song.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFavoriteRepository_ListSongsInInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := repositories.New(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "alice", false)
	other := testutil.CreateUser(t, db, "bob", false)
	first := testutil.CreateSong(t, db, "First", nil)
	second := testutil.CreateSong(t, db, "Second", nil)

	_, err := repos.Favorite.Toggle(ctx, db.SQL, user.ID, second.ID)
	require.NoError(t, err)
	_, err = repos.Favorite.Toggle(ctx, db.SQL, user.ID, first.ID)
	require.NoError(t, err)
	_, err = repos.Favorite.Toggle(ctx, db.SQL, other.ID, first.ID)
	require.NoError(t, err)

	songs, err := repos.Favorite.ListSongs(ctx, db.SQL, user.ID)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, second.ID, songs[0].ID)
	assert.Equal(t, first.ID, songs[1].ID)

	none, err := repos.Favorite.ListSongs(ctx, db.SQL, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
