package ports

import (
	"context"
	"time"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// ForumRepository defines persistence operations for posts and comments.
// Like sets are stored alongside each entity and toggled atomically.
type ForumRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindPostByID(ctx context.Context, id string) (*domain.Post, error)
	// ListPosts returns a page of posts, newest first. page is 0-based.
	ListPosts(ctx context.Context, page, size int) ([]*domain.Post, error)
	UpdatePostContent(ctx context.Context, id, content string, updatedAt time.Time) error
	DeletePost(ctx context.Context, id string) error
	SetPostLike(ctx context.Context, id, username string, liked bool) error

	CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindCommentByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListCommentsByPost returns a post's comments in creation order.
	ListCommentsByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	UpdateCommentContent(ctx context.Context, id, content string, updatedAt time.Time) error
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentsByPost(ctx context.Context, postID string) error
	SetCommentLike(ctx context.Context, id, username string, liked bool) error
}
