package service

import (
	"context"
	"fmt"

	"picboard/internal/model"
	"picboard/internal/repository"
)

type LikeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

// Like records that userID likes postID. The (user, post) unique constraint
// rejects a second like, including concurrent ones.
func (s *LikeService) Like(ctx context.Context, userID, postID int64) (*model.Like, error) {
	like, err := s.likeRepo.Create(ctx, userID, postID)
	switch {
	case err == nil:
		return like, nil
	case repository.IsConstraintViolation(err, repository.UniqueViolation):
		return nil, model.ErrAlreadyLiked
	case repository.IsConstraintViolation(err, repository.ForeignKeyViolation):
		return nil, model.ErrPostNotFound
	default:
		return nil, fmt.Errorf("like post: %w", err)
	}
}

func (s *LikeService) ListByPost(ctx context.Context, postID int64) ([]model.LikeView, error) {
	return s.likeRepo.ListByPost(ctx, postID)
}

// Unlike removes userID's like of postID. A missing like yields model.ErrLikeNotFound.
func (s *LikeService) Unlike(ctx context.Context, userID, postID int64) error {
	return s.likeRepo.Delete(ctx, userID, postID)
}
