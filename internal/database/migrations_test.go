package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateModels_CreatesTables(t *testing.T) {
	sql, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{})
	require.NoError(t, err)

	db := NewFromGorm(sql)
	require.NoError(t, db.MigrateModels())
	require.NoError(t, db.CreateIndexes())

	for _, table := range []string{
		"users",
		"genres",
		"artists",
		"songs",
		"albums",
		"song_genres",
		"album_songs",
		"user_favorite_songs",
	} {
		assert.True(t, sql.Migrator().HasTable(table), table)
	}

	assert.True(t, sql.Migrator().HasColumn("song_genres", "created_at"))
	assert.True(t, sql.Migrator().HasColumn("album_songs", "created_at"))

	// Running twice must be a no-op
	assert.NoError(t, MigrateModels(sql))
}
