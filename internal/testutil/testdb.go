// Package testutil opens throwaway SQLite databases with the full schema
// migrated, so repository, controller and handler tests run without
// PostgreSQL or valkey.
package testutil

import (
	"path/filepath"
	"testing"

	"songvault/internal/database"
	"songvault/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewTestDB returns a migrated database with no cache clients attached.
// Each call gets its own file under t.TempDir().
func NewTestDB(t *testing.T) database.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "songvault.db") + "?_foreign_keys=on&_busy_timeout=5000"
	sql, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := sql.DB()
	require.NoError(t, err)
	require.NoError(t, database.MigrateModels(sql))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database.NewFromGorm(sql)
}

func CreateUser(t *testing.T, db database.DB, username string, staff bool) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com", IsStaff: staff}
	require.NoError(t, user.SetPassword("password-"+username))
	require.NoError(t, db.SQL.Create(user).Error)
	return user
}

func CreateGenre(t *testing.T, db database.DB, name string) *models.Genre {
	t.Helper()

	genre := &models.Genre{Name: name}
	require.NoError(t, db.SQL.Create(genre).Error)
	return genre
}

func CreateArtist(t *testing.T, db database.DB, name string) *models.Artist {
	t.Helper()

	artist := &models.Artist{Name: name}
	require.NoError(t, db.SQL.Create(artist).Error)
	return artist
}

func CreateSong(t *testing.T, db database.DB, title string, artist *models.Artist, genres ...*models.Genre) *models.Song {
	t.Helper()

	song := &models.Song{Title: title, AudioFile: "songs/audio/" + title + ".mp3"}
	if artist != nil {
		song.ArtistID = &artist.ID
	}
	require.NoError(t, db.SQL.Create(song).Error)

	for _, genre := range genres {
		require.NoError(t, db.SQL.Create(&models.SongGenre{SongID: song.ID, GenreID: genre.ID}).Error)
	}
	return song
}

func CreateAlbum(t *testing.T, db database.DB, owner *models.User, name string) *models.Album {
	t.Helper()

	album := &models.Album{Name: name, UserID: owner.ID}
	require.NoError(t, db.SQL.Create(album).Error)
	return album
}
