package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"picboard/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. A taken username surfaces as a UniqueViolation.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, fullname, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, u.Username, u.Fullname, u.Password).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", classify(err))
	}

	return nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, fullname, password, created_at
		FROM users
		WHERE username = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// GetProfile retrieves a user together with the number of posts, likes and comments they own.
func (r *userRepository) GetProfile(ctx context.Context, id int64) (*model.Profile, error) {
	query := `
		SELECT u.id, u.username, u.fullname, u.created_at,
		       (SELECT COUNT(*) FROM posts p WHERE p.user_id = u.id) AS post_count,
		       (SELECT COUNT(*) FROM likes l WHERE l.user_id = u.id) AS like_count,
		       (SELECT COUNT(*) FROM comments c WHERE c.user_id = u.id) AS comment_count
		FROM users u
		WHERE u.id = $1
	`

	var p model.Profile
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return &p, nil
}
