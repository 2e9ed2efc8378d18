package service

import (
	"context"
	"fmt"
	"strings"

	"picboard/internal/model"
	"picboard/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo repository.UserRepository
	auth *AuthService
}

func NewUserService(repo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		repo: repo,
		auth: auth,
	}
}

// Register creates a new user account. The password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, model.ErrUsernameRequired
	}
	if req.Password == "" {
		return nil, model.ErrPasswordRequired
	}

	hashedPassword, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: hashedPassword,
	}
	if req.Fullname != nil && strings.TrimSpace(*req.Fullname) != "" {
		user.Fullname = req.Fullname
	}

	// The unique index on username decides races between concurrent registrations.
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsConstraintViolation(err, repository.UniqueViolation) {
			return nil, model.ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (string, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}

	if !s.auth.VerifyPassword(req.Password, user.Password) {
		return "", model.ErrInvalidPassword
	}

	return s.auth.IssueToken(user.ID)
}

// GetProfile returns the user with counts of the posts, likes and comments they own.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}
