package models

import (
	"time"
)

type BaseModel struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"          json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                    json:"updatedAt"`
}
