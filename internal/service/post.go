package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"picboard/internal/model"
	"picboard/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	media    *MediaService
}

func NewPostService(postRepo repository.PostRepository, media *MediaService) *PostService {
	return &PostService{
		postRepo: postRepo,
		media:    media,
	}
}

// Create stores the uploaded images and then inserts the post with one image
// row per stored file. Upload validation runs first, so a rejected upload never
// leaves a post behind.
func (s *PostService) Create(ctx context.Context, userID int64, content string, files []*multipart.FileHeader) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrPostContentRequired
	}
	if len(files) > model.MaxPostImages {
		return nil, model.ErrTooManyFiles
	}

	keys, err := s.media.SaveImages(ctx, files)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.Create(ctx, userID, content, keys)
	if err != nil {
		s.media.RemoveImages(context.WithoutCancel(ctx), keys)
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Printf("[PostService] Created post=%d user=%d images=%d", post.ID, userID, len(keys))
	return post, nil
}

// List returns all posts newest first with viewerID's like flag.
func (s *PostService) List(ctx context.Context, viewerID int64) ([]model.PostView, error) {
	return s.postRepo.List(ctx, viewerID)
}

// Get returns a post with its comments.
func (s *PostService) Get(ctx context.Context, postID, viewerID int64) (*model.PostView, error) {
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

// Delete removes a post owned by userID together with its comments, likes and
// images, then removes the image files. File removal is best-effort.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetOwned(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	keys := make([]string, len(post.Images))
	for i, img := range post.Images {
		keys[i] = img.File
	}
	s.media.RemoveImages(context.WithoutCancel(ctx), keys)

	log.Printf("[PostService] Deleted post=%d user=%d images=%d", postID, userID, len(keys))
	return nil
}
