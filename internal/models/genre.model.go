package models

import (
	"songvault/internal/utils"

	"gorm.io/gorm"
)

type Genre struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text;not null;default:''"          json:"description"`
}

func (g *Genre) BeforeSave(tx *gorm.DB) error {
	g.Name = utils.CleanText(g.Name)
	return nil
}
