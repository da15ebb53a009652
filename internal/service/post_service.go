package service

import (
	"context"
	"errors"

	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidPermission = errors.New("no permission over post")
	ErrAlreadyLiked = errors.New("post already liked")
)

// PostService defines post, comment and like operations
type PostService interface {
	// Create persists a new post by username
	Create(ctx context.Context, title, body, username string) error
	// Modify updates a post's title and body; author only
	Modify(ctx context.Context, postID int64, title, body, username string) (*domain.Post, error)
	// Delete soft-deletes a post; author only
	Delete(ctx context.Context, postID int64, username string) error
	// List retrieves posts newest first
	List(ctx context.Context, page, size int) ([]*domain.Post, int64, error)
	// My retrieves the caller's posts newest first
	My(ctx context.Context, username string, page, size int) ([]*domain.Post, int64, error)
	// Like records a like and alarms the post author
	Like(ctx context.Context, postID int64, username string) error
	// LikeCount returns the number of likes on a post
	LikeCount(ctx context.Context, postID int64) (int64, error)
	// Comment persists a comment and alarms the post author
	Comment(ctx context.Context, postID int64, username, comment string) error
	// GetComments retrieves a post's comments newest first
	GetComments(ctx context.Context, postID int64, page, size int) ([]*domain.Comment, int64, error)
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
	users    repository.UserRepository
	alarms   AlarmPublisher
}

// NewPostService creates a new PostService
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	users repository.UserRepository,
	alarms AlarmPublisher,
) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		users:    users,
		alarms:   alarms,
	}
}

// Create persists a new post
func (s *postService) Create(ctx context.Context, title, body, username string) error {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}

	post := &domain.Post{
		Title:  title,
		Body:   body,
		UserID: user.ID,
	}
	return s.posts.Create(ctx, post)
}

// Modify updates a post's title and body
func (s *postService) Modify(ctx context.Context, postID int64, title, body, username string) (*domain.Post, error) {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != user.ID {
		return nil, ErrInvalidPermission
	}

	post.Title = title
	post.Body = body
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes a post
func (s *postService) Delete(ctx context.Context, postID int64, username string) error {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != user.ID {
		return ErrInvalidPermission
	}
	return s.posts.SoftDelete(ctx, postID)
}

// List retrieves posts newest first
func (s *postService) List(ctx context.Context, page, size int) ([]*domain.Post, int64, error) {
	return s.posts.List(ctx, page, size)
}

// My retrieves the caller's posts newest first
func (s *postService) My(ctx context.Context, username string, page, size int) ([]*domain.Post, int64, error) {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	return s.posts.ListByUser(ctx, user.ID, page, size)
}

// Like records a like and alarms the post author
func (s *postService) Like(ctx context.Context, postID int64, username string) error {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	liked, err := s.likes.Exists(ctx, postID, user.ID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	if err := s.likes.Create(ctx, postID, user.ID); err != nil {
		return err
	}

	return s.alarms.Publish(ctx, post.UserID, domain.AlarmTypeNewLike, domain.AlarmArgs{
		FromUserID: user.ID,
		TargetID:   post.ID,
	})
}

// LikeCount returns the number of likes on a post
func (s *postService) LikeCount(ctx context.Context, postID int64) (int64, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return 0, err
	}
	return s.likes.CountByPost(ctx, postID)
}

// Comment persists a comment and alarms the post author
func (s *postService) Comment(ctx context.Context, postID int64, username, comment string) error {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	c := &domain.Comment{
		PostID:  postID,
		UserID:  user.ID,
		Comment: comment,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return err
	}

	return s.alarms.Publish(ctx, post.UserID, domain.AlarmTypeNewComment, domain.AlarmArgs{
		FromUserID: user.ID,
		TargetID:   post.ID,
	})
}

// GetComments retrieves a post's comments newest first
func (s *postService) GetComments(ctx context.Context, postID int64, page, size int) ([]*domain.Comment, int64, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByPost(ctx, postID, page, size)
}

func (s *postService) getUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *postService) getPost(ctx context.Context, postID int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}
