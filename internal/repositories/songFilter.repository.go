package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// SongFilter narrows the song list. Empty criteria are ignored and present
// criteria combine with AND. A genre id with no matching genre simply
// matches nothing.
type SongFilter struct {
	Query   string
	GenreID *int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Scope is a value, so applying it again re-runs the same query
func (f SongFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Query)) + "%"
		db = db.Where(`LOWER(songs.title) LIKE ? ESCAPE '\'`, pattern)
	}

	if f.GenreID != nil {
		db = db.Where("songs.id IN (SELECT song_id FROM song_genres WHERE genre_id = ?)", *f.GenreID)
	}

	return db.Order("songs.id DESC")
}
