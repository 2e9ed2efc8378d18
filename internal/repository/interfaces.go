package repository

import (
	"context"

	"picboard/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetProfile(ctx context.Context, id int64) (*model.Profile, error)
}

type PostRepository interface {
	// Create inserts the post and one image row per file key, in order, atomically.
	Create(ctx context.Context, userID int64, content string, files []string) (*model.Post, error)
	// List returns every post newest first, as seen by viewerID.
	List(ctx context.Context, viewerID int64) ([]model.PostView, error)
	// GetByID returns a post with its comments, as seen by viewerID.
	GetByID(ctx context.Context, postID, viewerID int64) (*model.PostView, error)
	// GetOwned returns the post with its images only if userID owns it.
	GetOwned(ctx context.Context, postID, userID int64) (*model.Post, error)
	// Delete removes the post together with its comments, likes and images.
	Delete(ctx context.Context, postID int64) error
}

type LikeRepository interface {
	Create(ctx context.Context, userID, postID int64) (*model.Like, error)
	ListByPost(ctx context.Context, postID int64) ([]model.LikeView, error)
	Delete(ctx context.Context, userID, postID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	// Update and Delete only touch comments authored by userID.
	Update(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error)
	Delete(ctx context.Context, commentID, userID int64) error
}
