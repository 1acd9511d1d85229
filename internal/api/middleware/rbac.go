package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentIdentity(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireAdmin allows only ADMIN and OWNER roles.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok || !domain.IsAdminOrOwner(id.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireOwner allows only the owner: the configured owner account id or an
// account with the OWNER role. Stricter than RequireAdmin.
func RequireOwner(ownerID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok || !domain.IsOwner(id.ID, id.Role, ownerID) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "only owner can manage admins"})
			}
			return next(c)
		}
	}
}
