package model

import (
	"errors"
	"time"
)

// Post is a row of the posts table.
type Post struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`

	Images []Image
}

// Image is an attachment of a post. File is the storage key, never a URL.
type Image struct {
	ID     int64  `db:"id"`
	File   string `db:"file"`
	PostID int64  `db:"post_id"`
}

// PostView is a post as seen by one viewer: author, images, counters and
// whether the viewer likes it. Comments are only loaded for the detail view.
type PostView struct {
	Post
	Author       UserSummary
	LikeCount    int
	CommentCount int
	Liked        bool
	Comments     []Comment
}

type ImageResponse struct {
	ID     int64  `json:"id"`
	File   string `json:"file"`
	PostID int64  `json:"postId"`
}

type PostCounts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

type PostResponse struct {
	ID        int64           `json:"id"`
	Content   string          `json:"content"`
	UserID    int64           `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
	Images    []ImageResponse `json:"images"`
	User      UserSummary     `json:"user"`
	Count     PostCounts      `json:"_count"`
	Liked     bool            `json:"liked"`
}

type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

type CreatePostResponse struct {
	Message string `json:"message"`
	PostID  int64  `json:"postId"`
}

// Post media constants
const (
	MaxPostImages    = 5
	MaxImageSize     = 5 * 1024 * 1024 // 5MiB per file
	PostImagesField  = "images"
	PostContentField = "content"
)

// Post errors
var (
	ErrPostNotFound        = errors.New("post not found")
	ErrPostContentRequired = errors.New("post content is required")
)
