package ports

import (
	"context"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// AuthService implements the registration and login workflows, including the
// ban and admin-approval gating rules applied at login.
type AuthService interface {
	Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}
