package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post, with its author joined in.
type Comment struct {
	ID        int64       `db:"id"`
	Content   string      `db:"content"`
	UserID    int64       `db:"user_id"`
	PostID    int64       `db:"post_id"`
	CreatedAt time.Time   `db:"created_at"`
	Author    UserSummary `db:"author"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateCommentRequest is the request body for updating a comment.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	UserID    int64       `json:"userId"`
	PostID    int64       `json:"postId"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

// Comment errors
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrContentRequired = errors.New("comment content is required")
)
