package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picboard/internal/model"
)

var postColumns = []string{"id", "content", "user_id", "created_at", "username", "fullname", "like_count", "comment_count", "liked"}

func TestPostRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts \(content, user_id\)`).
		WithArgs("hi", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "created_at"}).AddRow(int64(10), "hi", int64(1), testTime))
	mock.ExpectQuery(`INSERT INTO images \(file, post_id\)`).
		WithArgs("a.png", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file", "post_id"}).AddRow(int64(1), "a.png", int64(10)))
	mock.ExpectQuery(`INSERT INTO images \(file, post_id\)`).
		WithArgs("b.jpg", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file", "post_id"}).AddRow(int64(2), "b.jpg", int64(10)))
	mock.ExpectCommit()

	post, err := repo.Create(context.Background(), 1, "hi", []string{"a.png", "b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), post.ID)
	require.Len(t, post.Images, 2)
	assert.Equal(t, "a.png", post.Images[0].File)
	assert.Equal(t, "b.jpg", post.Images[1].File)
}

func TestPostRepository_CreateRollsBackOnImageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "created_at"}).AddRow(int64(10), "hi", int64(1), testTime))
	mock.ExpectQuery(`INSERT INTO images`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 1, "hi", []string{"a.png"})
	assert.Error(t, err)
}

func TestPostRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`EXISTS\(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = \$1\) AS liked`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(int64(11), "second", int64(1), testTime, "alice", nil, 1, 0, true).
			AddRow(int64(10), "first", int64(1), testTime, "alice", nil, 0, 2, false))
	mock.ExpectQuery(`FROM images\s+WHERE post_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file", "post_id"}).
			AddRow(int64(1), "a.png", int64(10)).
			AddRow(int64(2), "b.png", int64(10)))

	posts, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(11), posts[0].ID)
	assert.True(t, posts[0].Liked)
	assert.Equal(t, 1, posts[0].LikeCount)
	assert.Empty(t, posts[0].Images)

	assert.Equal(t, "alice", posts[1].Author.Username)
	assert.Equal(t, 2, posts[1].CommentCount)
	assert.Len(t, posts[1].Images, 2)
}

func TestPostRepository_ListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`FROM posts p`).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows(postColumns))

	posts, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE p.id = \$2`).
		WithArgs(int64(3), int64(10)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(int64(10), "hi", int64(1), testTime, "alice", "Alice A", 0, 1, false))
	mock.ExpectQuery(`FROM images`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file", "post_id"}).AddRow(int64(1), "a.png", int64(10)))
	mock.ExpectQuery(`FROM comments c`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id", "post_id", "created_at", "author.username", "author.fullname"}).
			AddRow(int64(5), "nice", int64(3), int64(10), testTime, "bob", nil))

	post, err := repo.GetByID(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, "hi", post.Content)
	require.Len(t, post.Images, 1)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "bob", post.Comments[0].Author.Username)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE p.id = \$2`).WithArgs(int64(3), int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99, 3)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestPostRepository_GetOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(10), int64(2)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOwned(context.Background(), 10, 2)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM comments WHERE post_id = \$1`).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM likes WHERE post_id = \$1`).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM images WHERE post_id = \$1`).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 10))
}

func TestPostRepository_DeleteMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM comments`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM likes`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM images`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM posts`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 10), model.ErrPostNotFound)
}
