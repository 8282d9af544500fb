package services

import (
	"context"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"songvault/config"
	"songvault/internal/apperrors"
	"songvault/internal/models"
	"songvault/pkg/logger"

	"github.com/google/uuid"
)

type MediaKind string

const (
	MediaAudio       MediaKind = "songs"
	MediaCover       MediaKind = "covers"
	MediaArtistImage MediaKind = "artists"
)

func (k MediaKind) validate(filename string) error {
	if k == MediaAudio {
		return models.ValidateAudioFile(filename)
	}
	return models.ValidateImageFile(filename)
}

type StoredFile struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// MediaService stores uploads under MEDIA_ROOT/<kind>/<uuid><ext>. Stored
// paths are slash separated and relative to the root.
type MediaService struct {
	root string
	log  logger.Logger
}

func NewMediaService(config config.Config) *MediaService {
	return &MediaService{
		root: config.MediaRoot,
		log:  logger.New("mediaService"),
	}
}

func (s *MediaService) Root() string {
	return s.root
}

func (s *MediaService) Save(
	ctx context.Context,
	kind MediaKind,
	header *multipart.FileHeader,
) (string, error) {
	log := s.log.TraceFromContext(ctx).Function("Save")

	if err := kind.validate(header.Filename); err != nil {
		return "", log.ErrorWithType(apperrors.ErrValidation, err.Error(), "filename", header.Filename, "kind", kind)
	}

	src, err := header.Open()
	if err != nil {
		return "", log.Err("failed to open upload", err, "filename", header.Filename)
	}
	defer src.Close()

	dir := filepath.Join(s.root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", log.Err("failed to create media directory", err, "directory", dir)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", log.Err("failed to create media file", err, "name", name)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", log.Err("failed to write media file", err, "name", name)
	}

	stored := path.Join(string(kind), name)
	log.Info("Stored upload", "path", stored, "size", header.Size)
	return stored, nil
}

// Delete removes a stored file. Missing files and paths outside the media
// root are ignored.
func (s *MediaService) Delete(ctx context.Context, stored string) error {
	log := s.log.TraceFromContext(ctx).Function("Delete")

	full, ok := s.resolve(stored)
	if !ok {
		log.Warn("Refusing to delete path outside media root", "path", stored)
		return nil
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return log.Err("failed to delete media file", err, "path", stored)
	}
	return nil
}

func (s *MediaService) ListFiles(ctx context.Context) ([]StoredFile, error) {
	log := s.log.TraceFromContext(ctx).Function("ListFiles")

	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return []StoredFile{}, nil
	}

	var files []StoredFile
	err := filepath.WalkDir(s.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}

		files = append(files, StoredFile{
			Path:       filepath.ToSlash(rel),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to walk media root", err, "root", s.root)
	}

	return files, nil
}

func (s *MediaService) resolve(stored string) (string, bool) {
	if stored == "" {
		return "", false
	}
	full := filepath.Join(s.root, filepath.FromSlash(stored))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return full, true
}
