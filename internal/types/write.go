package types

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a field that was left out of a request body from
// one that was sent as null.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil for null or absent values
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	value := o.Value
	return &value
}

// SongWriteRequest is the flat write shape. Related records are referenced
// by id; id, created_at and uploaded_by are always assigned by the server.
type SongWriteRequest struct {
	Title      *string          `json:"title"`
	Lyrics     *string          `json:"lyrics"`
	AudioFile  *string          `json:"audio_file"`
	CoverImage Optional[string] `json:"cover_image"`
	ArtistID   Optional[int]    `json:"artist_id"`
	GenreIDs   *[]int           `json:"genre_ids"`
}

type ArtistWriteRequest struct {
	Name  *string          `json:"name"`
	Bio   *string          `json:"bio"`
	Image Optional[string] `json:"image"`
}

type GenreWriteRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AlbumWriteRequest struct {
	Name *string `json:"name"`
}
