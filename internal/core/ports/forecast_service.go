package ports

import (
	"context"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

// TransactionInput is the DTO passed from the transport layer when creating
// or updating a ledger entry.
type TransactionInput struct {
	Type        domain.TransactionType
	Amount      float64
	Category    string
	Description string
	Date        string // RFC 3339 date or datetime
}

// ForecastService predicts next-month expenses from a user's ledger and
// manages the transactions the prediction is trained on.
type ForecastService interface {
	ListTransactions(ctx context.Context, username string) ([]*domain.Transaction, error)
	CreateTransaction(ctx context.Context, username string, in TransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, username, id string, in TransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, username, id string) error
	// PredictNextMonth trains on the trailing months window of expense totals.
	PredictNextMonth(ctx context.Context, username string, months int) (*domain.Forecast, error)
}

// ForecastCache caches computed forecasts for a short period.
// Implementations must treat cache failures as misses, never as errors.
type ForecastCache interface {
	Get(ctx context.Context, username string, months int) (*domain.Forecast, bool)
	Set(ctx context.Context, username string, months int, f *domain.Forecast)
}
