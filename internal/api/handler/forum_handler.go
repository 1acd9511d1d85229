package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/api/metrics"
	"github.com/aibudget/tracker-api/internal/api/middleware"
	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

type ForumHandler struct {
	forumService ports.ForumService
}

func NewForumHandler(forumService ports.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

type contentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreatePost creates a forum post authored by the caller.
//
// @Summary      Create a post
// @Tags         forum
// @Accept       json
// @Produce      json
// @Param        body  body      contentRequest  true  "Post content"
// @Success      200   {object}  ports.PostView
// @Failure      400   {object}  map[string]string
// @Router       /forum/posts [post]
func (h *ForumHandler) CreatePost(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	view, err := h.forumService.CreatePost(c.Request().Context(), identity, req.Content)
	if err != nil {
		return err
	}
	metrics.ForumPostsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, view)
}

// ListPosts returns a page of posts, newest first. Anonymous callers get the
// same page with editable and liked flags cleared.
//
// @Summary      List posts
// @Tags         forum
// @Produce      json
// @Param        page  query     int  false  "0-based page"  default(0)
// @Param        size  query     int  false  "page size"     default(10)
// @Success      200   {array}   ports.PostView
// @Router       /forum/posts [get]
func (h *ForumHandler) ListPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil {
		size = 10
	}

	var viewer *domain.Identity
	if identity, ok := middleware.CurrentIdentity(c); ok {
		viewer = &identity
	}

	views, err := h.forumService.ListPosts(c.Request().Context(), viewer, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// EditPost rewrites a post's content; author or admin only.
//
// @Summary      Edit a post
// @Tags         forum
// @Router       /forum/posts/{id} [put]
func (h *ForumHandler) EditPost(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	view, err := h.forumService.EditPost(c.Request().Context(), identity, c.Param("id"), req.Content)
	if err != nil {
		return forumError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeletePost removes a post and its comments; author or admin only.
//
// @Summary      Delete a post
// @Tags         forum
// @Router       /forum/posts/{id} [delete]
func (h *ForumHandler) DeletePost(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)
	if err := h.forumService.DeletePost(c.Request().Context(), identity, c.Param("id")); err != nil {
		return forumError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// LikePost toggles the caller's like on a post.
//
// @Summary      Toggle a post like
// @Tags         forum
// @Router       /forum/posts/{id}/like [post]
func (h *ForumHandler) LikePost(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)
	if err := h.forumService.ToggleLikePost(c.Request().Context(), identity, c.Param("id")); err != nil {
		return forumError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// AddComment attaches a comment to a post.
//
// @Summary      Comment on a post
// @Tags         forum
// @Router       /forum/posts/{id}/comments [post]
func (h *ForumHandler) AddComment(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.forumService.AddComment(c.Request().Context(), identity, c.Param("id"), req.Content); err != nil {
		return forumError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// EditComment rewrites a comment; author or admin only.
//
// @Summary      Edit a comment
// @Tags         forum
// @Router       /forum/comments/{id} [put]
func (h *ForumHandler) EditComment(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.forumService.EditComment(c.Request().Context(), identity, c.Param("id"), req.Content); err != nil {
		return forumError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// DeleteComment removes a comment; author or admin only.
//
// @Summary      Delete a comment
// @Tags         forum
// @Router       /forum/comments/{id} [delete]
func (h *ForumHandler) DeleteComment(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)
	if err := h.forumService.DeleteComment(c.Request().Context(), identity, c.Param("id")); err != nil {
		return forumError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// LikeComment toggles the caller's like on a comment.
//
// @Summary      Toggle a comment like
// @Tags         forum
// @Router       /forum/comments/{id}/like [post]
func (h *ForumHandler) LikeComment(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)
	if err := h.forumService.ToggleLikeComment(c.Request().Context(), identity, c.Param("id")); err != nil {
		return forumError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func forumError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrPostNotFound), errors.Is(err, domain.ErrCommentNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "not authorized to modify this resource"})
	}
	return err
}
