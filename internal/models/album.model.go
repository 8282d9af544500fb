package models

type Album struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	UserID int    `gorm:"not null;index"             json:"userId"`

	User  *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Songs []*Song `gorm:"-"                                                               json:"songs"`
}
