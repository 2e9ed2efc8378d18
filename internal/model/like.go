package model

import "errors"

// Like is a row of the likes table; (UserID, PostID) is unique.
type Like struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	PostID int64 `db:"post_id"`
}

// LikeView is a like with the liker joined in.
type LikeView struct {
	Like
	User UserSummary `db:"author"`
}

type LikeResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	PostID int64 `json:"postId"`
}

type LikeWithUserResponse struct {
	LikeResponse
	User UserSummary `json:"user"`
}

// CodeAlreadyLiked is the error code for a second like of the same post.
const CodeAlreadyLiked = "ALREADY_LIKED"

var (
	ErrAlreadyLiked = errors.New("post already liked")
	ErrLikeNotFound = errors.New("like not found")
)
