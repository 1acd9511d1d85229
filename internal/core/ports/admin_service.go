package ports

import (
	"context"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// AdminService implements the privileged account-management operations.
// Role checks are enforced by route middleware; actor identifies the caller
// for the audit trail.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	Ban(ctx context.Context, actor domain.Identity, id string) (*domain.User, error)
	Unban(ctx context.Context, actor domain.Identity, id string) (*domain.User, error)
	ListPendingAdminRequests(ctx context.Context) ([]*domain.User, error)
	ApproveAdmin(ctx context.Context, actor domain.Identity, id string) (*domain.User, error)
	RevokeAdmin(ctx context.Context, actor domain.Identity, id string) (*domain.User, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Enqueue(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
