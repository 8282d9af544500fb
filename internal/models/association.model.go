package models

import "time"

// Association rows carry a composite primary key, so inserting a pair that
// already exists is rejected by the database rather than duplicated.

type SongGenre struct {
	SongID    int       `gorm:"primaryKey;autoIncrement:false"        json:"songId"`
	GenreID   int       `gorm:"primaryKey;autoIncrement:false;index"  json:"genreId"`
	CreatedAt time.Time `gorm:"autoCreateTime"                        json:"createdAt"`

	Song  *Song  `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE;"  json:"-"`
	Genre *Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE;" json:"-"`
}

type AlbumSong struct {
	AlbumID   int       `gorm:"primaryKey;autoIncrement:false"       json:"albumId"`
	SongID    int       `gorm:"primaryKey;autoIncrement:false;index" json:"songId"`
	CreatedAt time.Time `gorm:"autoCreateTime"                       json:"createdAt"`

	Album *Album `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE;" json:"-"`
	Song  *Song  `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE;"  json:"-"`
}

type UserFavoriteSong struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false"       json:"userId"`
	SongID    int       `gorm:"primaryKey;autoIncrement:false;index" json:"songId"`
	CreatedAt time.Time `gorm:"autoCreateTime"                       json:"createdAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Song *Song `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE;" json:"-"`
}
