package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"songvault/internal/apperrors"
	adminController "songvault/internal/controllers/admin"
	"songvault/internal/types"

	"github.com/gofiber/fiber/v2"
)

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched so
// a bare PATCH is a no-op rather than an error.
func decodeJSON(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return invalidInput("Invalid request body")
	}
	return nil
}

// invalidInput reports malformed client input; nothing is logged for it
func invalidInput(message string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, message)
}

type formValues struct {
	form *multipart.Form
}

func (f formValues) text(key string) *string {
	values, ok := f.form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

// optionalText treats a present but empty field as an explicit null
func (f formValues) optionalText(key string) types.Optional[string] {
	value := f.text(key)
	switch {
	case value == nil:
		return types.Optional[string]{}
	case *value == "":
		return types.Null[string]()
	default:
		return types.Some(*value)
	}
}

func (f formValues) optionalInt(key string) (types.Optional[int], error) {
	value := f.text(key)
	switch {
	case value == nil:
		return types.Optional[int]{}, nil
	case strings.TrimSpace(*value) == "":
		return types.Null[int](), nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil {
		return types.Optional[int]{}, invalidInput(key + " must be an integer")
	}
	return types.Some(parsed), nil
}

// intList accepts repeated keys and comma separated values. A key sent only
// with empty values yields an empty, non-nil list.
func (f formValues) intList(key string) (*[]int, error) {
	values, ok := f.form.Value[key]
	if !ok {
		return nil, nil
	}

	ids := []int{}
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, invalidInput(key + " must contain integers")
			}
			ids = append(ids, id)
		}
	}
	return &ids, nil
}

func (f formValues) file(key string) *multipart.FileHeader {
	files := f.form.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func parseSongWrite(c *fiber.Ctx) (types.SongWriteRequest, adminController.SongUploads, error) {
	var request types.SongWriteRequest
	var uploads adminController.SongUploads

	if !isMultipart(c) {
		return request, uploads, decodeJSON(c, &request)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return request, uploads, invalidInput("Invalid multipart form")
	}
	values := formValues{form: form}

	request.Title = values.text("title")
	request.Lyrics = values.text("lyrics")
	request.AudioFile = values.text("audio_file")
	request.CoverImage = values.optionalText("cover_image")

	if request.ArtistID, err = values.optionalInt("artist_id"); err != nil {
		return request, uploads, err
	}
	if request.GenreIDs, err = values.intList("genre_ids"); err != nil {
		return request, uploads, err
	}

	uploads.AudioFile = values.file("audio_file")
	uploads.CoverImage = values.file("cover_image")
	if uploads.AudioFile != nil {
		request.AudioFile = nil
	}
	if uploads.CoverImage != nil {
		request.CoverImage = types.Optional[string]{}
	}

	return request, uploads, nil
}

func parseArtistWrite(c *fiber.Ctx) (types.ArtistWriteRequest, *multipart.FileHeader, error) {
	var request types.ArtistWriteRequest

	if !isMultipart(c) {
		return request, nil, decodeJSON(c, &request)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return request, nil, invalidInput("Invalid multipart form")
	}
	values := formValues{form: form}

	request.Name = values.text("name")
	request.Bio = values.text("bio")

	image := values.file("image")
	if image == nil {
		request.Image = values.optionalText("image")
	}

	return request, image, nil
}
