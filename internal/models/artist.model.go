package models

import (
	"songvault/internal/utils"

	"gorm.io/gorm"
)

type Artist struct {
	BaseModel
	Name  string  `gorm:"type:varchar(255);not null;index" json:"name"`
	Bio   string  `gorm:"type:text;not null;default:''"    json:"bio"`
	Image *string `gorm:"type:text"                        json:"image,omitempty"`
}

func (a *Artist) BeforeSave(tx *gorm.DB) error {
	a.Name = utils.CleanText(a.Name)
	a.Bio, _ = utils.CleanUTF8(a.Bio)
	return nil
}
