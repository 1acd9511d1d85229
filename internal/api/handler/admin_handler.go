package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/api/metrics"
	"github.com/aibudget/tracker-api/internal/api/middleware"
	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

// AdminHandler exposes the privileged account-management endpoints. Role
// checks happen in route middleware; handlers only translate between HTTP
// and the admin service.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every account.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Ban flags an account as banned.
//
// @Summary      Ban a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/ban [post]
func (h *AdminHandler) Ban(c echo.Context) error {
	return h.mutate(c, h.adminService.Ban, domain.AuditBan)
}

// Unban clears an account's ban flag.
//
// @Summary      Unban a user
// @Tags         admin
// @Router       /admin/users/{id}/unban [post]
func (h *AdminHandler) Unban(c echo.Context) error {
	return h.mutate(c, h.adminService.Unban, domain.AuditUnban)
}

// ListPending returns admin accounts awaiting owner approval.
//
// @Summary      List pending admin requests
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /admin/admin-requests [get]
func (h *AdminHandler) ListPending(c echo.Context) error {
	users, err := h.adminService.ListPendingAdminRequests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Approve grants a pending account admin access. Owner only.
//
// @Summary      Approve an admin request
// @Tags         admin
// @Router       /admin/admin-requests/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	return h.mutate(c, h.adminService.ApproveAdmin, domain.AuditApprove)
}

// Revoke demotes an admin back to USER. Owner only.
//
// @Summary      Revoke an admin
// @Tags         admin
// @Router       /admin/admin-requests/{id}/revoke [post]
func (h *AdminHandler) Revoke(c echo.Context) error {
	return h.mutate(c, h.adminService.RevokeAdmin, domain.AuditRevoke)
}

type adminMutation func(ctx context.Context, actor domain.Identity, id string) (*domain.User, error)

func (h *AdminHandler) mutate(c echo.Context, op adminMutation, action domain.AuditAction) error {
	identity, _ := middleware.CurrentIdentity(c)

	user, err := op(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues(string(action)).Inc()
	return c.JSON(http.StatusOK, user)
}
