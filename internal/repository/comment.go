package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"picboard/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// commentColumns selects a comment aliased as c joined with its author aliased as u.
const commentColumns = `
	c.id, c.content, c.user_id, c.post_id, c.created_at,
	u.username AS "author.username", u.fullname AS "author.fullname"
`

// Create inserts a comment and returns it with the author attached.
func (r *commentRepository) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	query := `
		WITH c AS (
			INSERT INTO comments (content, user_id, post_id)
			VALUES ($1, $2, $3)
			RETURNING id, content, user_id, post_id, created_at
		)
		SELECT ` + commentColumns + `
		FROM c
		JOIN users u ON u.id = c.user_id
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, content, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", classify(err))
	}
	return &comment, nil
}

// ListByPost returns the comments of a post, newest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return selectComments(ctx, r.db, postID)
}

// Update changes the content of a comment authored by userID. A foreign
// comment and a missing comment both yield ErrCommentNotFound.
func (r *commentRepository) Update(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error) {
	query := `
		WITH c AS (
			UPDATE comments
			SET content = $1
			WHERE id = $2 AND user_id = $3
			RETURNING id, content, user_id, post_id, created_at
		)
		SELECT ` + commentColumns + `
		FROM c
		JOIN users u ON u.id = c.user_id
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, content, commentID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &comment, nil
}

// Delete removes a comment authored by userID.
func (r *commentRepository) Delete(ctx context.Context, commentID, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func selectComments(ctx context.Context, q sqlx.QueryerContext, postID int64) ([]model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`
	comments := []model.Comment{}
	if err := sqlx.SelectContext(ctx, q, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return comments, nil
}
