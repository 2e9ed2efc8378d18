// Package seed fills a development database with demo users, posts, likes and
// comments. It writes through the repositories, so the same constraints apply
// as for API traffic.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"picboard/internal/model"
	"picboard/internal/repository"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

type demoPost struct {
	content string
	files   []string
}

type demoUser struct {
	username string
	fullname string
	posts    []demoPost
}

var demoUsers = []demoUser{
	{
		username: "john.doe",
		fullname: "John Doe",
		posts: []demoPost{
			{content: "First post content", files: []string{"sample1.jpg", "sample2.jpg"}},
			{content: "Second post content", files: []string{"sample3.jpg"}},
		},
	},
	{
		username: "jane.doe",
		fullname: "Jane Doe",
		posts: []demoPost{
			{content: "Jane's first post", files: []string{"sample4.jpg"}},
		},
	},
}

// PasswordHasher hashes seeded passwords the way registration does.
// service.AuthService satisfies it.
type PasswordHasher interface {
	HashPassword(plain string) (string, error)
}

// Seeder writes demo data through the repositories.
type Seeder struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
	hasher   PasswordHasher
	rng      *rand.Rand
}

func NewSeeder(users repository.UserRepository, posts repository.PostRepository, likes repository.LikeRepository, comments repository.CommentRepository, hasher PasswordHasher) *Seeder {
	return &Seeder{
		users:    users,
		posts:    posts,
		likes:    likes,
		comments: comments,
		hasher:   hasher,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Demo creates john.doe and jane.doe with their posts, then the demo likes and
// comments on john's posts. Users that already exist are left untouched, and
// engagement is only added when john's posts were created by this run.
func (s *Seeder) Demo(ctx context.Context) error {
	hash, err := s.hasher.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ids := make([]int64, len(demoUsers))
	var johnPosts []int64
	for i, du := range demoUsers {
		existing, err := s.users.GetByUsername(ctx, du.username)
		switch {
		case err == nil:
			log.Printf("[Seed] User %s already exists, skipping", du.username)
			ids[i] = existing.ID
			continue
		case !errors.Is(err, model.ErrUserNotFound):
			return fmt.Errorf("lookup %s: %w", du.username, err)
		}

		fullname := du.fullname
		user := &model.User{Username: du.username, Fullname: &fullname, Password: hash}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", du.username, err)
		}
		ids[i] = user.ID

		for _, dp := range du.posts {
			post, err := s.posts.Create(ctx, user.ID, dp.content, dp.files)
			if err != nil {
				return fmt.Errorf("create post for %s: %w", du.username, err)
			}
			if i == 0 {
				johnPosts = append(johnPosts, post.ID)
			}
		}
		log.Printf("[Seed] Created user=%d username=%s posts=%d", user.ID, du.username, len(du.posts))
	}

	if len(johnPosts) < 2 {
		return nil
	}
	john, jane := ids[0], ids[1]

	for _, l := range []struct{ userID, postID int64 }{
		{john, johnPosts[0]},
		{jane, johnPosts[0]},
		{john, johnPosts[1]},
	} {
		if err := s.like(ctx, l.userID, l.postID); err != nil {
			return err
		}
	}

	for _, c := range []struct {
		userID, postID int64
		content        string
	}{
		{john, johnPosts[0], "Nice post!"},
		{jane, johnPosts[1], "Great content!"},
	} {
		if _, err := s.comments.Create(ctx, c.userID, c.postID, c.content); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
	}

	log.Printf("[Seed] Demo data ready, password for every user: %s", DemoPassword)
	return nil
}

// Fake creates n random users, each with one post, and has every new user like
// and comment on a few of the posts created in this run.
func (s *Seeder) Fake(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}

	hash, err := s.hasher.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userIDs := make([]int64, 0, n)
	postIDs := make([]int64, 0, n)
	for len(userIDs) < n {
		fullname := gofakeit.Name()
		user := &model.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Fullname: &fullname,
			Password: hash,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if repository.IsConstraintViolation(err, repository.UniqueViolation) {
				continue
			}
			return fmt.Errorf("create fake user: %w", err)
		}

		post, err := s.posts.Create(ctx, user.ID, gofakeit.Sentence(8), nil)
		if err != nil {
			return fmt.Errorf("create fake post: %w", err)
		}
		userIDs = append(userIDs, user.ID)
		postIDs = append(postIDs, post.ID)
	}

	for _, userID := range userIDs {
		for _, idx := range s.rng.Perm(len(postIDs))[:min(3, len(postIDs))] {
			if err := s.like(ctx, userID, postIDs[idx]); err != nil {
				return err
			}
		}
		postID := postIDs[s.rng.Intn(len(postIDs))]
		if _, err := s.comments.Create(ctx, userID, postID, gofakeit.Sentence(6)); err != nil {
			return fmt.Errorf("create fake comment: %w", err)
		}
	}

	log.Printf("[Seed] Created %d fake users with posts", n)
	return nil
}

// like ignores a like that already exists.
func (s *Seeder) like(ctx context.Context, userID, postID int64) error {
	_, err := s.likes.Create(ctx, userID, postID)
	if err != nil && !repository.IsConstraintViolation(err, repository.UniqueViolation) {
		return fmt.Errorf("create like user=%d post=%d: %w", userID, postID, err)
	}
	return nil
}
