package seed

import (
	"errors"

	"songvault/internal/models"
	"songvault/pkg/logger"

	"gorm.io/gorm"
)

type seedUser struct {
	username string
	email    string
	password string
	staff    bool
}

var users = []seedUser{
	{username: "admin", email: "admin@example.com", password: "password", staff: true},
	{username: "listener", email: "listener@example.com", password: "password"},
}

var genres = []models.Genre{
	{Name: "Rock", Description: "Guitars, drums and attitude"},
	{Name: "Pop"},
	{Name: "Jazz"},
	{Name: "Electronic"},
}

var artists = []models.Artist{
	{Name: "The Night Owls", Bio: "Late night indie rock trio"},
	{Name: "Mira Sol"},
}

// Seed loads development users and catalog reference rows. Songs are left
// out since they need audio files in the media root.
func Seed(db *gorm.DB, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	for _, entry := range users {
		var existing models.User
		err := db.Where("username = ?", entry.username).First(&existing).Error
		if err == nil {
			log.Info("User already exists", "username", entry.username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return log.Err("failed to look up user", err, "username", entry.username)
		}

		user := models.User{Username: entry.username, Email: entry.email, IsStaff: entry.staff, IsActive: true}
		if err := user.SetPassword(entry.password); err != nil {
			return log.Err("failed to hash password", err, "username", entry.username)
		}
		if err := db.Create(&user).Error; err != nil {
			return log.Err("failed to create user", err, "username", entry.username)
		}
		log.Info("Seeded user", "username", entry.username, "staff", entry.staff)
	}

	for _, genre := range genres {
		if err := db.Where(models.Genre{Name: genre.Name}).FirstOrCreate(&genre).Error; err != nil {
			return log.Err("failed to seed genre", err, "name", genre.Name)
		}
	}

	for _, artist := range artists {
		if err := db.Where(models.Artist{Name: artist.Name}).FirstOrCreate(&artist).Error; err != nil {
			return log.Err("failed to seed artist", err, "name", artist.Name)
		}
	}

	log.Info("Seed complete", "users", len(users), "genres", len(genres), "artists", len(artists))
	return nil
}
