package ports

import (
	"context"
	"time"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// CommentView is the comment representation rendered to clients, with the
// like and editability flags computed for the current viewer.
type CommentView struct {
	ID                 string    `json:"id"`
	Author             string    `json:"author"`
	Content            string    `json:"content"`
	LikeCount          int       `json:"likeCount"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser"`
	Editable           bool      `json:"editable"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PostView is the post representation rendered to clients, comments included.
type PostView struct {
	ID                 string        `json:"id"`
	Author             string        `json:"author"`
	Content            string        `json:"content"`
	LikeCount          int           `json:"likeCount"`
	LikedByCurrentUser bool          `json:"likedByCurrentUser"`
	Editable           bool          `json:"editable"`
	Comments           []CommentView `json:"comments"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// ForumService defines the forum use cases. Mutations of existing entities
// are gated on resource ownership: the author or an admin. viewer is nil for
// anonymous reads.
type ForumService interface {
	CreatePost(ctx context.Context, actor domain.Identity, content string) (*PostView, error)
	ListPosts(ctx context.Context, viewer *domain.Identity, page, size int) ([]PostView, error)
	EditPost(ctx context.Context, actor domain.Identity, postID, content string) (*PostView, error)
	DeletePost(ctx context.Context, actor domain.Identity, postID string) error
	ToggleLikePost(ctx context.Context, actor domain.Identity, postID string) error
	AddComment(ctx context.Context, actor domain.Identity, postID, content string) error
	EditComment(ctx context.Context, actor domain.Identity, commentID, content string) error
	DeleteComment(ctx context.Context, actor domain.Identity, commentID string) error
	ToggleLikeComment(ctx context.Context, actor domain.Identity, commentID string) error
}
