package model

import (
	"errors"
	"time"
)

// User is a row of the users table. Password holds the bcrypt hash and never
// leaves the service layer.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Fullname  *string   `db:"fullname"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}

// Profile is a user with the number of posts, likes and comments they own.
type Profile struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Fullname     *string   `db:"fullname"`
	CreatedAt    time.Time `db:"created_at"`
	PostCount    int       `db:"post_count"`
	LikeCount    int       `db:"like_count"`
	CommentCount int       `db:"comment_count"`
}

// UserSummary is the author/liker excerpt joined onto posts, likes and comments.
type UserSummary struct {
	Username string  `db:"username" json:"username"`
	Fullname *string `db:"fullname" json:"fullname"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Fullname *string `json:"fullname"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ProfileCounts struct {
	Posts    int `json:"posts"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

type ProfileResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Fullname  *string       `json:"fullname"`
	CreatedAt time.Time     `json:"createdAt"`
	Count     ProfileCounts `json:"_count"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidPassword is returned when the password does not match the stored hash
	ErrInvalidPassword = errors.New("invalid password")

	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")

	// ErrPasswordTooLong is returned for passwords over the 72 bytes bcrypt accepts
	ErrPasswordTooLong = errors.New("password too long")
)
