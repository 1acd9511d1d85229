package domain

import (
	"errors"
	"time"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is a single ledger entry owned by one account.
type Transaction struct {
	ID          string          `json:"id"`
	Username    string          `json:"-"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"transactionDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Forecast is the result of a next-month expense prediction: the trailing
// monthly totals that fed the regression plus the predicted amount.
type Forecast struct {
	Months          []string  `json:"historyMonths"`
	MonthlyTotals   []float64 `json:"historyTotals"`
	PredictedAmount float64   `json:"predictedAmount"`
}
