package types

import (
	"strings"
	"time"

	"songvault/internal/models"
)

type GenreResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ArtistResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Bio   string  `json:"bio"`
	Image *string `json:"image"`
}

// SongResponse is the nested read shape used by every song list and detail
type SongResponse struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	CoverImage *string         `json:"cover_image"`
	AudioFile  string          `json:"audio_file"`
	Lyrics     string          `json:"lyrics"`
	Artist     *ArtistResponse `json:"artist"`
	Genres     []GenreResponse `json:"genres"`
	UploadedBy *int            `json:"uploaded_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AlbumResponse struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Songs     []SongResponse `json:"songs"`
	CreatedAt time.Time      `json:"created_at"`
}

type UserProfileResponse struct {
	ID            int            `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	FavoriteSongs []SongResponse `json:"favorite_songs"`
}

type FavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Renderer turns models into read shapes. Stored media paths are relative
// to the media root and rendered under MediaURL.
type Renderer struct {
	MediaURL string
}

func NewRenderer(mediaURL string) Renderer {
	return Renderer{MediaURL: mediaURL}
}

func (r Renderer) MediaPath(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := r.MediaURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(path, "/")
}

func (r Renderer) optionalMedia(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	rendered := r.MediaPath(*path)
	return &rendered
}

func (r Renderer) Genre(genre *models.Genre) GenreResponse {
	return GenreResponse{
		ID:          genre.ID,
		Name:        genre.Name,
		Description: genre.Description,
	}
}

func (r Renderer) Genres(genres []*models.Genre) []GenreResponse {
	response := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		response = append(response, r.Genre(genre))
	}
	return response
}

func (r Renderer) Artist(artist *models.Artist) ArtistResponse {
	return ArtistResponse{
		ID:    artist.ID,
		Name:  artist.Name,
		Bio:   artist.Bio,
		Image: r.optionalMedia(artist.Image),
	}
}

func (r Renderer) Artists(artists []*models.Artist) []ArtistResponse {
	response := make([]ArtistResponse, 0, len(artists))
	for _, artist := range artists {
		response = append(response, r.Artist(artist))
	}
	return response
}

func (r Renderer) Song(song *models.Song) SongResponse {
	response := SongResponse{
		ID:         song.ID,
		Title:      song.Title,
		CoverImage: r.optionalMedia(song.CoverImage),
		AudioFile:  r.MediaPath(song.AudioFile),
		Lyrics:     song.Lyrics,
		Genres:     make([]GenreResponse, 0, len(song.Genres)),
		UploadedBy: song.UploadedByID,
		CreatedAt:  song.CreatedAt,
	}

	if song.Artist != nil {
		artist := r.Artist(song.Artist)
		response.Artist = &artist
	}

	for i := range song.Genres {
		response.Genres = append(response.Genres, r.Genre(&song.Genres[i]))
	}

	return response
}

func (r Renderer) Songs(songs []*models.Song) []SongResponse {
	response := make([]SongResponse, 0, len(songs))
	for _, song := range songs {
		response = append(response, r.Song(song))
	}
	return response
}

func (r Renderer) Album(album *models.Album) AlbumResponse {
	return AlbumResponse{
		ID:        album.ID,
		Name:      album.Name,
		Songs:     r.Songs(album.Songs),
		CreatedAt: album.CreatedAt,
	}
}

func (r Renderer) Albums(albums []*models.Album) []AlbumResponse {
	response := make([]AlbumResponse, 0, len(albums))
	for _, album := range albums {
		response = append(response, r.Album(album))
	}
	return response
}

func (r Renderer) Profile(user *models.User, favorites []*models.Song) UserProfileResponse {
	return UserProfileResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FavoriteSongs: r.Songs(favorites),
	}
}
