package service

import (
	"context"
	"errors"
	"sync"

	"picboard/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// Services depend on repository interfaces, so each test swaps in a mock whose
// behaviour is set through the xxxFn fields.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	getProfileFn    func(ctx context.Context, id int64) (*model.Profile, error)

	createCalls []*model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetProfile(ctx context.Context, id int64) (*model.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

type mockPostRepository struct {
	createFn   func(ctx context.Context, userID int64, content string, files []string) (*model.Post, error)
	listFn     func(ctx context.Context, viewerID int64) ([]model.PostView, error)
	getByIDFn  func(ctx context.Context, postID, viewerID int64) (*model.PostView, error)
	getOwnedFn func(ctx context.Context, postID, userID int64) (*model.Post, error)
	deleteFn   func(ctx context.Context, postID int64) error

	createdFiles [][]string
	deleteCalls  []int64
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, content string, files []string) (*model.Post, error) {
	m.createdFiles = append(m.createdFiles, files)
	if m.createFn != nil {
		return m.createFn(ctx, userID, content, files)
	}
	return &model.Post{ID: 1, UserID: userID, Content: content}, nil
}

func (m *mockPostRepository) List(ctx context.Context, viewerID int64) ([]model.PostView, error) {
	if m.listFn != nil {
		return m.listFn(ctx, viewerID)
	}
	return []model.PostView{}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID, viewerID int64) (*model.PostView, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID, viewerID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetOwned(ctx context.Context, postID, userID int64) (*model.Post, error) {
	if m.getOwnedFn != nil {
		return m.getOwnedFn(ctx, postID, userID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	m.deleteCalls = append(m.deleteCalls, postID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID)
	}
	return nil
}

type mockLikeRepository struct {
	createFn     func(ctx context.Context, userID, postID int64) (*model.Like, error)
	listByPostFn func(ctx context.Context, postID int64) ([]model.LikeView, error)
	deleteFn     func(ctx context.Context, userID, postID int64) error
}

func (m *mockLikeRepository) Create(ctx context.Context, userID, postID int64) (*model.Like, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, postID)
	}
	return &model.Like{ID: 1, UserID: userID, PostID: postID}, nil
}

func (m *mockLikeRepository) ListByPost(ctx context.Context, postID int64) ([]model.LikeView, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return []model.LikeView{}, nil
}

func (m *mockLikeRepository) Delete(ctx context.Context, userID, postID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, postID)
	}
	return nil
}

type mockCommentRepository struct {
	createFn     func(ctx context.Context, userID, postID int64, content string) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID int64) ([]model.Comment, error)
	updateFn     func(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error)
	deleteFn     func(ctx context.Context, commentID, userID int64) error

	calls int
}

func (m *mockCommentRepository) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	m.calls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, postID, content)
	}
	return &model.Comment{ID: 1, UserID: userID, PostID: postID, Content: content}, nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	m.calls++
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return []model.Comment{}, nil
}

func (m *mockCommentRepository) Update(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error) {
	m.calls++
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, userID, content)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID, userID int64) error {
	m.calls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, userID)
	}
	return model.ErrCommentNotFound
}

// =============================================================================
// MOCK STORE
// =============================================================================

type mockStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	saved     []string
	deleted   []string
	failSave  int // 1-based index of the Save call that fails, 0 = never
	deleteErr error
}

func newMockStore() *mockStore {
	return &mockStore{objects: make(map[string][]byte)}
}

func (m *mockStore) Save(ctx context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave > 0 && len(m.saved)+1 == m.failSave {
		return errors.New("store unavailable")
	}
	if _, ok := m.objects[key]; ok {
		return errors.New("key exists")
	}
	m.objects[key] = data
	m.saved = append(m.saved, key)
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *mockStore) URL(key string) string {
	return "http://files.test/" + key
}
