package service

import (
	"context"
	"fmt"
	"strings"

	"picboard/internal/model"
	"picboard/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// Create adds a comment by userID to postID.
func (s *CommentService) Create(ctx context.Context, userID, postID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	comment, err := s.commentRepo.Create(ctx, userID, postID, req.Content)
	if err != nil {
		if repository.IsConstraintViolation(err, repository.ForeignKeyViolation) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns the comments of a post, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// Update edits a comment. Comments of other users are reported as not found.
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, req model.UpdateCommentRequest) (*model.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}
	return s.commentRepo.Update(ctx, commentID, userID, req.Content)
}

// Delete removes a comment. Comments of other users are reported as not found.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	return s.commentRepo.Delete(ctx, commentID, userID)
}
