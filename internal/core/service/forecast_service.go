package service

import (
	"context"
	"math"
	"time"

	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

const (
	defaultForecastMonths = 12
	maxForecastMonths     = 120
)

// ForecastService manages a user's ledger and predicts next-month expenses
// with a least-squares line over the trailing monthly expense totals. The
// model is intentionally lightweight so it runs without any ML dependency.
type ForecastService struct {
	repo  ports.TransactionRepository
	cache ports.ForecastCache
}

func NewForecastService(repo ports.TransactionRepository, cache ports.ForecastCache) *ForecastService {
	return &ForecastService{repo: repo, cache: cache}
}

func (s *ForecastService) ListTransactions(ctx context.Context, username string) ([]*domain.Transaction, error) {
	return s.repo.List(ctx, username)
}

func (s *ForecastService) CreateTransaction(ctx context.Context, username string, in ports.TransactionInput) (*domain.Transaction, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &domain.Transaction{
		Username:    username,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *ForecastService) UpdateTransaction(ctx context.Context, username, id string, in ports.TransactionInput) (*domain.Transaction, error) {
	existing, err := s.repo.FindByID(ctx, username, id)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	existing.Type = in.Type
	existing.Amount = in.Amount
	existing.Category = in.Category
	existing.Description = in.Description
	existing.Date = date
	return s.repo.Update(ctx, existing)
}

func (s *ForecastService) DeleteTransaction(ctx context.Context, username, id string) error {
	return s.repo.Delete(ctx, username, id)
}

// PredictNextMonth aggregates expense totals for the trailing months window
// (current month included), fits y = a + b*x over the ordered totals and
// evaluates the line one month past the window, clamped at zero. A window
// with no slope information falls back to the plain average. Results are
// cached; a cache failure is treated as a miss.
//
// months is caller supplied, so the window is clamped to maxForecastMonths;
// the response and cache entry sizes scale with it.
func (s *ForecastService) PredictNextMonth(ctx context.Context, username string, months int) (*domain.Forecast, error) {
	if months <= 0 {
		months = defaultForecastMonths
	}
	if months > maxForecastMonths {
		months = maxForecastMonths
	}
	if s.cache != nil {
		if f, ok := s.cache.Get(ctx, username, months); ok {
			return f, nil
		}
	}

	now := time.Now().UTC()
	windowStart := monthStart(now).AddDate(0, -(months - 1), 0)
	windowEnd := monthStart(now).AddDate(0, 1, 0)

	transactions, err := s.repo.ListBetween(ctx, username, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != domain.TypeExpense {
			continue
		}
		totals[t.Date.UTC().Format("2006-01")] += t.Amount
	}

	labels := make([]string, 0, months)
	y := make([]float64, 0, months)
	for i := 0; i < months; i++ {
		m := windowStart.AddDate(0, i, 0).Format("2006-01")
		labels = append(labels, m)
		y = append(y, totals[m])
	}

	forecast := &domain.Forecast{
		Months:          labels,
		MonthlyTotals:   y,
		PredictedAmount: predict(y),
	}
	if s.cache != nil {
		s.cache.Set(ctx, username, months, forecast)
	}
	return forecast, nil
}

// predict fits a least-squares line over (i, y[i]) and evaluates at len(y).
func predict(y []float64) float64 {
	n := len(y)
	if n == 0 {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for i, yi := range y {
		xi := float64(i)
		sx += xi
		sy += yi
		sxx += xi * xi
		sxy += xi * yi
	}

	slope, intercept := 0.0, sy/float64(n)
	if denom := float64(n)*sxx - sx*sx; math.Abs(denom) > 1e-9 {
		slope = (float64(n)*sxy - sx*sy) / denom
		intercept = (sy - slope*sx) / float64(n)
	}

	p := intercept + slope*float64(n)
	if p < 0 {
		return 0
	}
	return p
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// parseDate accepts a date or RFC 3339 datetime.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
