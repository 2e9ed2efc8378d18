package service

import (
	"context"
	"errors"
	"testing"

	"picboard/internal/model"
	"picboard/internal/repository"
)

func TestLikeService_Like(t *testing.T) {
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"success", nil, nil},
		{"already liked", &repository.ConstraintViolation{Kind: repository.UniqueViolation}, model.ErrAlreadyLiked},
		{"missing post", &repository.ConstraintViolation{Kind: repository.ForeignKeyViolation}, model.ErrPostNotFound},
		{"database error", dbErr, dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockLikeRepository{
				createFn: func(ctx context.Context, userID, postID int64) (*model.Like, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &model.Like{ID: 3, UserID: userID, PostID: postID}, nil
				},
			}
			svc := NewLikeService(repo)

			like, err := svc.Like(context.Background(), 2, 1)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Like: %v", err)
			}
			if like.UserID != 2 || like.PostID != 1 {
				t.Errorf("unexpected like: %+v", like)
			}
		})
	}
}

func TestLikeService_Unlike(t *testing.T) {
	repo := &mockLikeRepository{
		deleteFn: func(ctx context.Context, userID, postID int64) error {
			return model.ErrLikeNotFound
		},
	}
	svc := NewLikeService(repo)

	if err := svc.Unlike(context.Background(), 2, 1); !errors.Is(err, model.ErrLikeNotFound) {
		t.Errorf("error = %v, want ErrLikeNotFound", err)
	}
}

func TestLikeService_ListByPost(t *testing.T) {
	repo := &mockLikeRepository{
		listByPostFn: func(ctx context.Context, postID int64) ([]model.LikeView, error) {
			return []model.LikeView{{Like: model.Like{ID: 1, PostID: postID}, User: model.UserSummary{Username: "bob"}}}, nil
		},
	}

	likes, err := NewLikeService(repo).ListByPost(context.Background(), 4)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(likes) != 1 || likes[0].User.Username != "bob" || likes[0].PostID != 4 {
		t.Errorf("unexpected likes: %+v", likes)
	}
}
