package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // registers the webp decoder

	"picboard/internal/metrics"
	domain "picboard/internal/model"
	"picboard/internal/storage"
)

// CleanupQueue takes image keys whose deletion failed so they can be retried
// in the background.
type CleanupQueue interface {
	PublishOrphanedImages(ctx context.Context, keys []string) error
}

// MediaService validates uploaded post images and persists them in a Store.
type MediaService struct {
	store   storage.Store
	cleanup CleanupQueue
	now     func() time.Time
}

func NewMediaService(store storage.Store) *MediaService {
	return &MediaService{store: store, now: time.Now}
}

// SetCleanupQueue enables background retries of failed deletes.
func (s *MediaService) SetCleanupQueue(q CleanupQueue) {
	s.cleanup = q
}

// validatedImage is an upload that passed size, type and content checks.
type validatedImage struct {
	data        []byte
	contentType string
	ext         string
}

// SaveImages validates every file before storing any of them, then stores them
// in submission order and returns their keys. If a store fails midway the
// files already written are removed again.
func (s *MediaService) SaveImages(ctx context.Context, headers []*multipart.FileHeader) ([]string, error) {
	if len(headers) > domain.MaxPostImages {
		return nil, domain.ErrTooManyFiles
	}

	images := make([]validatedImage, 0, len(headers))
	for _, header := range headers {
		img, err := validateUpload(header, domain.MaxImageSize)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	keys := make([]string, 0, len(images))
	for _, img := range images {
		key := s.newKey(img.ext)
		if err := s.store.Save(ctx, key, img.contentType, img.data); err != nil {
			s.RemoveImages(context.WithoutCancel(ctx), keys)
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		metrics.ImagesStored.Inc()
		keys = append(keys, key)
	}

	return keys, nil
}

// RemoveImages deletes the given keys. Failures are logged and counted, never
// returned, and handed to the cleanup queue when one is set.
func (s *MediaService) RemoveImages(ctx context.Context, keys []string) {
	var failed []string
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			metrics.ImageDeleteFailures.Inc()
			log.Printf("[MediaService] Failed to delete image %s: %v", key, err)
			failed = append(failed, key)
		}
	}

	if len(failed) == 0 || s.cleanup == nil {
		return
	}
	if err := s.cleanup.PublishOrphanedImages(ctx, failed); err != nil {
		log.Printf("[MediaService] Failed to queue %d images for cleanup: %v", len(failed), err)
		return
	}
	metrics.ImagesQueued.Add(float64(len(failed)))
}

// URL returns the public address of a stored image.
func (s *MediaService) URL(key string) string {
	return s.store.URL(key)
}

// newKey builds "<unix millis>-<8 hex chars>.<ext>".
func (s *MediaService) newKey(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), suffix, ext)
}

func validateUpload(header *multipart.FileHeader, maxSize int64) (validatedImage, error) {
	if header.Size > maxSize {
		return validatedImage{}, domain.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return validatedImage{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, contentType, err := readAndValidateImage(file, header, maxSize)
	if err != nil {
		return validatedImage{}, err
	}

	if err := verifyImageContent(data, contentType); err != nil {
		return validatedImage{}, err
	}

	ext, _ := domain.ImageExtension(contentType)
	return validatedImage{data: data, contentType: contentType, ext: ext}, nil
}

// readAndValidateImage loads the upload into memory with size and type checks.
func readAndValidateImage(file io.Reader, header *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	limitedReader := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", domain.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !domain.IsAllowedImageType(contentType) {
		return nil, "", domain.ErrInvalidFileType
	}

	return data, contentType, nil
}

// verifyImageContent checks that the real format matches the declared content
// type, then decodes the image. Dimensions are checked from the header before
// the full decode.
func verifyImageContent(data []byte, contentType string) error {
	want, _ := domain.ImageFormat(contentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || format != want {
		return domain.ErrInvalidFileType
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.ErrInvalidFileType
	}
	if int64(cfg.Width)*int64(cfg.Height) > domain.MaxImagePixels {
		return domain.ErrImageTooLarge
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return domain.ErrInvalidFileType
	}
	return nil
}
