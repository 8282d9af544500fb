package models

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"songvault/internal/utils"

	"gorm.io/gorm"
)

var (
	AllowedAudioExtensions = []string{"mp3"}
	AllowedImageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

type Song struct {
	BaseModel
	Title        string  `gorm:"type:varchar(255);not null;index" json:"title"`
	CoverImage   *string `gorm:"type:text"                        json:"coverImage,omitempty"`
	AudioFile    string  `gorm:"type:text;not null"               json:"audioFile"`
	Lyrics       string  `gorm:"type:text;not null;default:''"    json:"lyrics"`
	ArtistID     *int    `gorm:"index"                            json:"artistId,omitempty"`
	UploadedByID *int    `gorm:"index"                            json:"uploadedById,omitempty"`

	Artist     *Artist `gorm:"foreignKey:ArtistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"     json:"artist,omitempty"`
	UploadedBy *User   `gorm:"foreignKey:UploadedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Genres     []Genre `gorm:"many2many:song_genres;"                                                  json:"genres,omitempty"`
}

func (s *Song) BeforeSave(tx *gorm.DB) error {
	s.Title = utils.CleanText(s.Title)
	s.Lyrics, _ = utils.CleanUTF8(s.Lyrics)
	return nil
}

// ValidateAudioFile checks the stored name against AllowedAudioExtensions.
// It runs when a song is written, never when it is read back.
func ValidateAudioFile(name string) error {
	return validateExtension(name, AllowedAudioExtensions)
}

func ValidateImageFile(name string) error {
	return validateExtension(name, AllowedImageExtensions)
}

func validateExtension(name string, allowed []string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" || !slices.Contains(allowed, ext) {
		return fmt.Errorf(
			"file extension %q is not allowed, allowed extensions are: %s",
			ext,
			strings.Join(allowed, ", "),
		)
	}
	return nil
}
