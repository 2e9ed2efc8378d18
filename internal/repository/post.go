package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"picboard/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postRow is a post joined with its author, counters and the viewer's like flag.
type postRow struct {
	ID           int64     `db:"id"`
	Content      string    `db:"content"`
	UserID       int64     `db:"user_id"`
	CreatedAt    time.Time `db:"created_at"`
	Username     string    `db:"username"`
	Fullname     *string   `db:"fullname"`
	LikeCount    int       `db:"like_count"`
	CommentCount int       `db:"comment_count"`
	Liked        bool      `db:"liked"`
}

func (row postRow) toView() model.PostView {
	return model.PostView{
		Post: model.Post{
			ID:        row.ID,
			Content:   row.Content,
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
		},
		Author:       model.UserSummary{Username: row.Username, Fullname: row.Fullname},
		LikeCount:    row.LikeCount,
		CommentCount: row.CommentCount,
		Liked:        row.Liked,
	}
}

// postViewSelect is shared by List and GetByID. $1 is always the viewer.
const postViewSelect = `
	SELECT p.id, p.content, p.user_id, p.created_at,
	       u.username, u.fullname,
	       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
	       EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

// Create inserts a new post and its images in a transaction.
func (r *postRepository) Create(ctx context.Context, userID int64, content string, files []string) (*model.Post, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var post model.Post
	query := `
		INSERT INTO posts (content, user_id)
		VALUES ($1, $2)
		RETURNING id, content, user_id, created_at
	`
	err = tx.GetContext(ctx, &post, query, content, userID)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", classify(err))
	}

	post.Images = make([]model.Image, 0, len(files))
	imageQuery := `
		INSERT INTO images (file, post_id)
		VALUES ($1, $2)
		RETURNING id, file, post_id
	`
	for i, file := range files {
		var image model.Image
		if err := tx.GetContext(ctx, &image, imageQuery, file, post.ID); err != nil {
			return nil, fmt.Errorf("insert image %d: %w", i, err)
		}
		post.Images = append(post.Images, image)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &post, nil
}

// List returns all posts newest first. The like flag only reflects viewerID's likes.
func (r *postRepository) List(ctx context.Context, viewerID int64) ([]model.PostView, error) {
	query := postViewSelect + `ORDER BY p.created_at DESC, p.id DESC`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, viewerID); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	postIDs := make([]int64, len(rows))
	for i, row := range rows {
		postIDs[i] = row.ID
	}
	images, err := r.getPostImages(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	posts := make([]model.PostView, len(rows))
	for i, row := range rows {
		posts[i] = row.toView()
		posts[i].Images = images[row.ID]
	}
	return posts, nil
}

// GetByID returns a single post with images and comments (newest first).
func (r *postRepository) GetByID(ctx context.Context, postID, viewerID int64) (*model.PostView, error) {
	query := postViewSelect + `WHERE p.id = $2`

	var row postRow
	err := r.db.GetContext(ctx, &row, query, viewerID, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toView()

	images, err := r.getPostImages(ctx, []int64{postID})
	if err != nil {
		return nil, err
	}
	post.Images = images[postID]

	comments, err := selectComments(ctx, r.db, postID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return &post, nil
}

// GetOwned returns the post only when userID owns it. A foreign post and a
// missing post both yield ErrPostNotFound.
func (r *postRepository) GetOwned(ctx context.Context, postID, userID int64) (*model.Post, error) {
	query := `
		SELECT id, content, user_id, created_at
		FROM posts
		WHERE id = $1 AND user_id = $2
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, postID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get owned post: %w", err)
	}

	images, err := r.getPostImages(ctx, []int64{postID})
	if err != nil {
		return nil, err
	}
	post.Images = images[postID]

	return &post, nil
}

// Delete removes a post and everything that references it in one transaction.
// The schema restricts deletes of referenced posts, so the order matters.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []struct {
		table string
		query string
	}{
		{"comments", `DELETE FROM comments WHERE post_id = $1`},
		{"likes", `DELETE FROM likes WHERE post_id = $1`},
		{"images", `DELETE FROM images WHERE post_id = $1`},
	} {
		if _, err := tx.ExecContext(ctx, stmt.query, postID); err != nil {
			return fmt.Errorf("delete %s: %w", stmt.table, err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Helper: fetch images for multiple posts in one query, in creation order
func (r *postRepository) getPostImages(ctx context.Context, postIDs []int64) (map[int64][]model.Image, error) {
	result := make(map[int64][]model.Image, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, file, post_id
		FROM images
		WHERE post_id = ANY($1)
		ORDER BY post_id, id
	`
	var images []model.Image
	if err := r.db.SelectContext(ctx, &images, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get post images: %w", err)
	}

	for _, img := range images {
		result[img.PostID] = append(result[img.PostID], img)
	}
	return result, nil
}
