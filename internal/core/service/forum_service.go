package service

import (
	"context"
	"time"

	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

// ForumService implements the community forum use cases. Edits and deletes of
// existing posts and comments are gated by domain.CanMutateResource: the
// author or an admin, nobody else.
type ForumService struct {
	repo ports.ForumRepository
}

func NewForumService(repo ports.ForumRepository) *ForumService {
	return &ForumService{repo: repo}
}

func (s *ForumService) CreatePost(ctx context.Context, actor domain.Identity, content string) (*ports.PostView, error) {
	now := time.Now().UTC()
	post, err := s.repo.CreatePost(ctx, &domain.Post{
		Author:    actor.Username,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	view := s.postView(ctx, post, &actor)
	return &view, nil
}

func (s *ForumService) ListPosts(ctx context.Context, viewer *domain.Identity, page, size int) ([]ports.PostView, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	posts, err := s.repo.ListPosts(ctx, page, size)
	if err != nil {
		return nil, err
	}
	views := make([]ports.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, s.postView(ctx, p, viewer))
	}
	return views, nil
}

func (s *ForumService) EditPost(ctx context.Context, actor domain.Identity, postID, content string) (*ports.PostView, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutateResource(actor, post.Author) {
		return nil, domain.ErrForbidden
	}
	now := time.Now().UTC()
	if err := s.repo.UpdatePostContent(ctx, postID, content, now); err != nil {
		return nil, err
	}
	post.Content = content
	post.UpdatedAt = now
	view := s.postView(ctx, post, &actor)
	return &view, nil
}

// DeletePost removes the post and everything hanging off it.
func (s *ForumService) DeletePost(ctx context.Context, actor domain.Identity, postID string) error {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if !domain.CanMutateResource(actor, post.Author) {
		return domain.ErrForbidden
	}
	if err := s.repo.DeleteCommentsByPost(ctx, postID); err != nil {
		return err
	}
	return s.repo.DeletePost(ctx, postID)
}

func (s *ForumService) ToggleLikePost(ctx context.Context, actor domain.Identity, postID string) error {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	return s.repo.SetPostLike(ctx, postID, actor.Username, !domain.LikedBy(post.Likes, actor.Username))
}

func (s *ForumService) AddComment(ctx context.Context, actor domain.Identity, postID, content string) error {
	if _, err := s.repo.FindPostByID(ctx, postID); err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err := s.repo.CreateComment(ctx, &domain.Comment{
		PostID:    postID,
		Author:    actor.Username,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

func (s *ForumService) EditComment(ctx context.Context, actor domain.Identity, commentID, content string) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !domain.CanMutateResource(actor, comment.Author) {
		return domain.ErrForbidden
	}
	return s.repo.UpdateCommentContent(ctx, commentID, content, time.Now().UTC())
}

func (s *ForumService) DeleteComment(ctx context.Context, actor domain.Identity, commentID string) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !domain.CanMutateResource(actor, comment.Author) {
		return domain.ErrForbidden
	}
	return s.repo.DeleteComment(ctx, commentID)
}

func (s *ForumService) ToggleLikeComment(ctx context.Context, actor domain.Identity, commentID string) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	return s.repo.SetCommentLike(ctx, commentID, actor.Username, !domain.LikedBy(comment.Likes, actor.Username))
}

// postView renders a post with per-viewer flags. Comment loading failures
// degrade to an empty list rather than failing the whole page.
func (s *ForumService) postView(ctx context.Context, post *domain.Post, viewer *domain.Identity) ports.PostView {
	view := ports.PostView{
		ID:        post.ID,
		Author:    post.Author,
		Content:   post.Content,
		LikeCount: len(post.Likes),
		Comments:  []ports.CommentView{},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if viewer != nil {
		view.LikedByCurrentUser = domain.LikedBy(post.Likes, viewer.Username)
		view.Editable = domain.CanMutateResource(*viewer, post.Author)
	}
	comments, err := s.repo.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		return view
	}
	for _, c := range comments {
		cv := ports.CommentView{
			ID:        c.ID,
			Author:    c.Author,
			Content:   c.Content,
			LikeCount: len(c.Likes),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		if viewer != nil {
			cv.LikedByCurrentUser = domain.LikedBy(c.Likes, viewer.Username)
			cv.Editable = domain.CanMutateResource(*viewer, c.Author)
		}
		view.Comments = append(view.Comments, cv)
	}
	return view
}
