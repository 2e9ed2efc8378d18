package seed

import (
	"context"
	"errors"
	"testing"

	"picboard/internal/model"
	"picboard/internal/repository"
)

type fakeDB struct {
	nextID   int64
	users    map[string]*model.User
	posts    []*model.Post
	likes    map[[2]int64]bool
	comments []model.Comment
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: map[string]*model.User{}, likes: map[[2]int64]bool{}}
}

func (db *fakeDB) id() int64 {
	db.nextID++
	return db.nextID
}

type fakeUsers struct{ *fakeDB }

func (r fakeUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.Username]; ok {
		return &repository.ConstraintViolation{Kind: repository.UniqueViolation}
	}
	u.ID = r.id()
	r.users[u.Username] = u
	return nil
}

func (r fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, model.ErrUserNotFound
}

func (r fakeUsers) GetProfile(context.Context, int64) (*model.Profile, error) {
	return nil, model.ErrUserNotFound
}

type fakePosts struct{ *fakeDB }

func (r fakePosts) Create(_ context.Context, userID int64, content string, files []string) (*model.Post, error) {
	p := &model.Post{ID: r.id(), UserID: userID, Content: content}
	for _, f := range files {
		p.Images = append(p.Images, model.Image{ID: r.id(), File: f, PostID: p.ID})
	}
	r.posts = append(r.posts, p)
	return p, nil
}

func (r fakePosts) List(context.Context, int64) ([]model.PostView, error) { return nil, nil }
func (r fakePosts) GetByID(context.Context, int64, int64) (*model.PostView, error) {
	return nil, model.ErrPostNotFound
}
func (r fakePosts) GetOwned(context.Context, int64, int64) (*model.Post, error) {
	return nil, model.ErrPostNotFound
}
func (r fakePosts) Delete(context.Context, int64) error { return nil }

type fakeLikes struct{ *fakeDB }

func (r fakeLikes) Create(_ context.Context, userID, postID int64) (*model.Like, error) {
	key := [2]int64{userID, postID}
	if r.likes[key] {
		return nil, &repository.ConstraintViolation{Kind: repository.UniqueViolation}
	}
	r.likes[key] = true
	return &model.Like{ID: r.id(), UserID: userID, PostID: postID}, nil
}

func (r fakeLikes) ListByPost(context.Context, int64) ([]model.LikeView, error) { return nil, nil }
func (r fakeLikes) Delete(context.Context, int64, int64) error                  { return nil }

type fakeComments struct{ *fakeDB }

func (r fakeComments) Create(_ context.Context, userID, postID int64, content string) (*model.Comment, error) {
	c := model.Comment{ID: r.id(), UserID: userID, PostID: postID, Content: content}
	r.comments = append(r.comments, c)
	return &c, nil
}

func (r fakeComments) ListByPost(context.Context, int64) ([]model.Comment, error) { return nil, nil }
func (r fakeComments) Update(context.Context, int64, int64, string) (*model.Comment, error) {
	return nil, model.ErrCommentNotFound
}
func (r fakeComments) Delete(context.Context, int64, int64) error { return nil }

// stubHasher tags the password instead of running bcrypt.
type stubHasher struct{}

func (stubHasher) HashPassword(plain string) (string, error) {
	return "hashed:" + plain, nil
}

type failingHasher struct{}

func (failingHasher) HashPassword(string) (string, error) {
	return "", errors.New("hasher unavailable")
}

func newTestSeeder(db *fakeDB) *Seeder {
	return NewSeeder(fakeUsers{db}, fakePosts{db}, fakeLikes{db}, fakeComments{db}, stubHasher{})
}

func TestDemo(t *testing.T) {
	db := newFakeDB()
	s := newTestSeeder(db)

	if err := s.Demo(context.Background()); err != nil {
		t.Fatalf("Demo() error = %v", err)
	}

	john, jane := db.users["john.doe"], db.users["jane.doe"]
	if john == nil || jane == nil {
		t.Fatalf("expected john.doe and jane.doe, got %v", db.users)
	}
	if john.Password != "hashed:"+DemoPassword {
		t.Errorf("john's password = %q, want it hashed by the injected hasher", john.Password)
	}
	if john.Fullname == nil || *john.Fullname != "John Doe" {
		t.Errorf("unexpected fullname %v", john.Fullname)
	}

	if len(db.posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(db.posts))
	}
	first := db.posts[0]
	if first.UserID != john.ID || len(first.Images) != 2 || first.Images[0].File != "sample1.jpg" {
		t.Errorf("unexpected first post %+v", first)
	}
	if db.posts[2].UserID != jane.ID || db.posts[2].Images[0].File != "sample4.jpg" {
		t.Errorf("unexpected jane post %+v", db.posts[2])
	}

	wantLikes := [][2]int64{{john.ID, db.posts[0].ID}, {jane.ID, db.posts[0].ID}, {john.ID, db.posts[1].ID}}
	if len(db.likes) != len(wantLikes) {
		t.Fatalf("expected %d likes, got %d", len(wantLikes), len(db.likes))
	}
	for _, l := range wantLikes {
		if !db.likes[l] {
			t.Errorf("missing like %v", l)
		}
	}

	if len(db.comments) != 2 || db.comments[1].Content != "Great content!" || db.comments[1].UserID != jane.ID {
		t.Errorf("unexpected comments %+v", db.comments)
	}
}

func TestDemo_Idempotent(t *testing.T) {
	db := newFakeDB()
	s := newTestSeeder(db)

	if err := s.Demo(context.Background()); err != nil {
		t.Fatalf("first Demo() error = %v", err)
	}
	if err := s.Demo(context.Background()); err != nil {
		t.Fatalf("second Demo() error = %v", err)
	}

	if len(db.users) != 2 || len(db.posts) != 3 || len(db.likes) != 3 || len(db.comments) != 2 {
		t.Errorf("second run changed data: users=%d posts=%d likes=%d comments=%d",
			len(db.users), len(db.posts), len(db.likes), len(db.comments))
	}
}

func TestFake(t *testing.T) {
	db := newFakeDB()
	s := newTestSeeder(db)

	if err := s.Fake(context.Background(), 5); err != nil {
		t.Fatalf("Fake() error = %v", err)
	}

	if len(db.users) != 5 {
		t.Errorf("expected 5 users, got %d", len(db.users))
	}
	if len(db.posts) != 5 {
		t.Errorf("expected 5 posts, got %d", len(db.posts))
	}
	if len(db.likes) != 15 {
		t.Errorf("expected 15 likes, got %d", len(db.likes))
	}
	if len(db.comments) != 5 {
		t.Errorf("expected 5 comments, got %d", len(db.comments))
	}
}

func TestFake_Zero(t *testing.T) {
	db := newFakeDB()
	if err := newTestSeeder(db).Fake(context.Background(), 0); err != nil {
		t.Fatalf("Fake(0) error = %v", err)
	}
	if len(db.users) != 0 {
		t.Errorf("expected no users, got %d", len(db.users))
	}
}

func TestDemo_HasherError(t *testing.T) {
	db := newFakeDB()
	s := NewSeeder(fakeUsers{db}, fakePosts{db}, fakeLikes{db}, fakeComments{db}, failingHasher{})

	if err := s.Demo(context.Background()); err == nil {
		t.Fatal("expected error when hashing fails")
	}
	if len(db.users) != 0 {
		t.Errorf("no users should be created, got %d", len(db.users))
	}
}
