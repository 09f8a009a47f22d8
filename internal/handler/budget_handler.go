package handler

import (
	"net/http"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the upsert budget request body
type BudgetRequest struct {
	CategoryID string `json:"categoryId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
}

// UpsertBudget handles PUT /budgets
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.UpsertBudget(req.CategoryID, domain.Period{Year: req.Year, Month: req.Month}, amount)
	if err != nil {
		return respondError(c, err, "Failed to upsert budget")
	}

	log.Info().Str("category_id", req.CategoryID).Int("year", req.Year).Int("month", req.Month).Msg("budget upserted")
	return c.JSON(http.StatusOK, budget)
}

// GetSummary handles GET /budgets/summary?year=&month=
func (h *BudgetHandler) GetSummary(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	summary, err := h.budgetService.Summary(period)
	if err != nil {
		return respondError(c, err, "Failed to build budget summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// CopyPrevious handles POST /budgets/copy-previous?year=&month=
func (h *BudgetHandler) CopyPrevious(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	count, err := h.budgetService.CopyFromPreviousMonth(period)
	if err != nil {
		return respondError(c, err, "Failed to copy budgets")
	}
	return c.JSON(http.StatusOK, BatchCountResponse{Count: int64(count)})
}

// Calibrate handles POST /budgets/calibrate?year=&month=
func (h *BudgetHandler) Calibrate(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	count, err := h.budgetService.Calibrate(period)
	if err != nil {
		return respondError(c, err, "Failed to calibrate budgets")
	}
	return c.JSON(http.StatusOK, BatchCountResponse{Count: int64(count)})
}
