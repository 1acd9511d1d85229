package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/api/middleware"
	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

// AnalyticsHandler exposes the transaction ledger and the next-month expense
// forecast.
type AnalyticsHandler struct {
	forecastService ports.ForecastService
}

func NewAnalyticsHandler(forecastService ports.ForecastService) *AnalyticsHandler {
	return &AnalyticsHandler{forecastService: forecastService}
}

type transactionRequest struct {
	Type        string  `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Date        string  `json:"transactionDate" validate:"required"`
}

func (r transactionRequest) input() ports.TransactionInput {
	return ports.TransactionInput{
		Type:        domain.TransactionType(r.Type),
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}
}

// ListTransactions returns the caller's ledger entries.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  domain.Transaction
// @Router       /transactions [get]
func (h *AnalyticsHandler) ListTransactions(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)
	transactions, err := h.forecastService.ListTransactions(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}

// CreateTransaction records a new ledger entry for the caller.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Router       /transactions [post]
func (h *AnalyticsHandler) CreateTransaction(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	t, err := h.forecastService.CreateTransaction(c.Request().Context(), identity.Username, req.input())
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// UpdateTransaction rewrites one of the caller's ledger entries.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Router       /transactions/{id} [put]
func (h *AnalyticsHandler) UpdateTransaction(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	t, err := h.forecastService.UpdateTransaction(c.Request().Context(), identity.Username, c.Param("id"), req.input())
	if err != nil {
		return transactionError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTransaction removes one of the caller's ledger entries.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Router       /transactions/{id} [delete]
func (h *AnalyticsHandler) DeleteTransaction(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)
	if err := h.forecastService.DeleteTransaction(c.Request().Context(), identity.Username, c.Param("id")); err != nil {
		return transactionError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// PredictNextMonth forecasts next month's expenses from the caller's ledger.
//
// @Summary      Predict next-month expenses
// @Tags         analytics
// @Produce      json
// @Param        months  query     int  false  "trailing months to train on"  default(12)
// @Success      200     {object}  domain.Forecast
// @Router       /analytics/predict-next-month [get]
func (h *AnalyticsHandler) PredictNextMonth(c echo.Context) error {
	identity, _ := middleware.CurrentIdentity(c)

	months, err := strconv.Atoi(c.QueryParam("months"))
	if err != nil {
		months = 12
	}

	forecast, err := h.forecastService.PredictNextMonth(c.Request().Context(), identity.Username, months)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, forecast)
}

func transactionError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrTransactionNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return err
}
