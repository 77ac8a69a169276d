package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/config"
	"github.com/eusluer/bosphorus-fellas-api/internal/storage"
)

var (
	ErrFileTooLarge  = errors.New("file exceeds the size limit")
	ErrInvalidFolder = errors.New("unknown upload folder")
	ErrNotAnImage    = errors.New("only image files can be uploaded")
	ErrEmptyFile     = errors.New("empty file")
	ErrInvalidPath   = errors.New("invalid file path")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type UploadResult struct {
	URL      string
	FileName string
	FilePath string
	Size     int64
}

type UploadService struct {
	store *storage.ObjectStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewUploadService(store *storage.ObjectStore, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Upload validates folder, size and content (sniffed, not trusted from the
// client) and stores the image under a random name.
func (s *UploadService) Upload(ctx context.Context, data []byte, folder string) (UploadResult, error) {
	if len(data) == 0 {
		return UploadResult{}, ErrEmptyFile
	}
	if int64(len(data)) > s.cfg.Upload.MaxFileSize {
		return UploadResult{}, ErrFileTooLarge
	}
	if !s.folderAllowed(folder) {
		return UploadResult{}, ErrInvalidFolder
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return UploadResult{}, ErrNotAnImage
	}

	fileName := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	objectKey := path.Join(folder, fileName)

	url, err := s.store.Upload(ctx, data, objectKey, contentType)
	if err != nil {
		return UploadResult{}, fmt.Errorf("store upload: %w", err)
	}

	s.log.Info().Str("object_key", objectKey).Int("size", len(data)).Msg("file uploaded")

	return UploadResult{
		URL:      url,
		FileName: fileName,
		FilePath: objectKey,
		Size:     int64(len(data)),
	}, nil
}

// Delete removes a previously uploaded object. The path must stay inside
// one of the allowed folders.
func (s *UploadService) Delete(ctx context.Context, filePath string) error {
	folder, _, ok := strings.Cut(filePath, "/")
	if !ok || !s.folderAllowed(folder) || strings.Contains(filePath, "..") {
		return ErrInvalidPath
	}
	if err := s.store.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("store delete: %w", err)
	}
	s.log.Info().Str("object_key", filePath).Msg("file deleted")
	return nil
}

func (s *UploadService) folderAllowed(folder string) bool {
	for _, allowed := range s.cfg.Upload.Folders {
		if folder == allowed {
			return true
		}
	}
	return false
}
