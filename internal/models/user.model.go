package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"type:varchar(254);not null;default:''"  json:"email"`
	PasswordHash string     `gorm:"type:text;not null"                     json:"-"`
	IsStaff      bool       `gorm:"type:bool;not null;default:false"       json:"isStaff"`
	IsActive     bool       `gorm:"type:bool;not null;default:true"        json:"isActive"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"                         json:"lastLoginAt,omitempty"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	return nil
}

// SetPassword replaces the stored hash; the plaintext is never kept
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) MarkLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
}
