package ports

import (
	"context"
	"time"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// TransactionRepository defines persistence operations for ledger entries.
// Every query is scoped to the owning username.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, username, id string) (*domain.Transaction, error)
	List(ctx context.Context, username string) ([]*domain.Transaction, error)
	// ListBetween returns the user's transactions with from <= date < to.
	ListBetween(ctx context.Context, username string, from, to time.Time) ([]*domain.Transaction, error)
	Update(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	Delete(ctx context.Context, username, id string) error
}
