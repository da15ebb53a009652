package service

import (
	"context"
	"sync"

	"github.com/yjpark/sns-service/internal/domain"
)

// mockUserRepository is an in-memory UserRepository
type mockUserRepository struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	nextID      int64
	createError error
	getError    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.createError != nil {
		return r.createError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.getError != nil {
		return nil, r.getError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[username], nil
}

// mockPostRepository is an in-memory PostRepository
type mockPostRepository struct {
	mu     sync.Mutex
	posts  map[int64]*domain.Post
	nextID int64
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{posts: make(map[int64]*domain.Post)}
}

func (r *mockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	post.ID = r.nextID
	r.posts[post.ID] = post
	return nil
}

func (r *mockPostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts[id], nil
}

func (r *mockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = post
	return nil
}

func (r *mockPostRepository) SoftDelete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *mockPostRepository) List(ctx context.Context, page, size int) ([]*domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *mockPostRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

// mockCommentRepository is an in-memory CommentRepository
type mockCommentRepository struct {
	mu          sync.Mutex
	comments    []*domain.Comment
	createError error
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{}
}

func (r *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if r.createError != nil {
		return r.createError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = int64(len(r.comments) + 1)
	r.comments = append(r.comments, comment)
	return nil
}

func (r *mockCommentRepository) ListByPost(ctx context.Context, postID int64, page, size int) ([]*domain.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

// mockLikeRepository is an in-memory LikeRepository
type mockLikeRepository struct {
	mu    sync.Mutex
	likes map[[2]int64]bool // postID, userID
}

func newMockLikeRepository() *mockLikeRepository {
	return &mockLikeRepository{likes: make(map[[2]int64]bool)}
}

func (r *mockLikeRepository) Create(ctx context.Context, postID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[[2]int64{postID, userID}] = true
	return nil
}

func (r *mockLikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[[2]int64{postID, userID}], nil
}

func (r *mockLikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for k := range r.likes {
		if k[0] == postID {
			count++
		}
	}
	return count, nil
}

// mockAlarmRepository is an in-memory AlarmRepository
type mockAlarmRepository struct {
	mu          sync.Mutex
	alarms      []*domain.Alarm
	createError error
}

func newMockAlarmRepository() *mockAlarmRepository {
	return &mockAlarmRepository{}
}

func (r *mockAlarmRepository) Create(ctx context.Context, alarm *domain.Alarm) error {
	if r.createError != nil {
		return r.createError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	alarm.ID = int64(len(r.alarms) + 1)
	r.alarms = append(r.alarms, alarm)
	return nil
}

func (r *mockAlarmRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Alarm, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Alarm
	for _, a := range r.alarms {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}
