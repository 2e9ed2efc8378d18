package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"picboard/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like record. A second like for the same (user, post) pair
// is rejected by the database and surfaces as a UniqueViolation.
func (r *likeRepository) Create(ctx context.Context, userID, postID int64) (*model.Like, error) {
	query := `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)
		RETURNING id, user_id, post_id
	`
	var like model.Like
	if err := r.db.GetContext(ctx, &like, query, userID, postID); err != nil {
		return nil, fmt.Errorf("insert like: %w", classify(err))
	}
	return &like, nil
}

// ListByPost returns the likes of a post with the liking user attached.
func (r *likeRepository) ListByPost(ctx context.Context, postID int64) ([]model.LikeView, error) {
	query := `
		SELECT l.id, l.user_id, l.post_id,
		       u.username AS "author.username", u.fullname AS "author.fullname"
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.post_id = $1
		ORDER BY l.id
	`
	likes := []model.LikeView{}
	if err := r.db.SelectContext(ctx, &likes, query, postID); err != nil {
		return nil, fmt.Errorf("get post likes: %w", err)
	}
	return likes, nil
}

// Delete removes the like identified by (userID, postID). Returns ErrLikeNotFound if absent.
func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}
