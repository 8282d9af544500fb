package database

import (
	"songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

// Models lists every table in dependency order
func Models() []any {
	return []any{
		&models.User{},
		&models.Genre{},
		&models.Artist{},
		&models.Song{},
		&models.Album{},
		&models.SongGenre{},
		&models.AlbumSong{},
		&models.UserFavoriteSong{},
	}
}

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	return MigrateModels(db.SQL)
}

// MigrateModels is usable against any gorm connection, including the SQLite
// databases the tests open.
func MigrateModels(sql *gorm.DB) error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	if err := sql.SetupJoinTable(&models.Song{}, "Genres", &models.SongGenre{}); err != nil {
		return log.Err("failed to set up song genre join table", err)
	}

	for _, model := range Models() {
		if err := sql.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_songs_title_lower ON songs (LOWER(title))",
		"CREATE INDEX IF NOT EXISTS idx_album_songs_album_created ON album_songs (album_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_user_favorite_songs_user_created ON user_favorite_songs (user_id, created_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
