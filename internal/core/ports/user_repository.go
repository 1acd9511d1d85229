package ports

import (
	"context"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Update persists mutable account state (role, flags, profile fields).
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListPendingAdmins returns accounts with role ADMIN that are not yet approved.
	ListPendingAdmins(ctx context.Context) ([]*domain.User, error)
}
