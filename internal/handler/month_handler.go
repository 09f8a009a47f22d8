package handler

import (
	"net/http"

	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MonthHandler exposes the reconciliation snapshots and repair operations
type MonthHandler struct {
	reconcileService *service.ReconcileService
}

// NewMonthHandler creates a new MonthHandler
func NewMonthHandler(reconcileService *service.ReconcileService) *MonthHandler {
	return &MonthHandler{reconcileService: reconcileService}
}

// GetMonth handles GET /months/:year/:month
func (h *MonthHandler) GetMonth(c echo.Context) error {
	period, err := periodFromPath(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	snapshot, err := h.reconcileService.GetMonth(period)
	if err != nil {
		return respondError(c, err, "Failed to get month snapshot")
	}
	return c.JSON(http.StatusOK, snapshot)
}

// CarryOverResponse carries the cumulative prior surplus of a period
type CarryOverResponse struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	CarryOver decimal.Decimal `json:"carryOver"`
}

// GetCarryOver handles GET /months/:year/:month/carry-over
func (h *MonthHandler) GetCarryOver(c echo.Context) error {
	period, err := periodFromPath(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	carryOver, err := h.reconcileService.CarryOver(period)
	if err != nil {
		return respondError(c, err, "Failed to compute carry-over")
	}
	return c.JSON(http.StatusOK, CarryOverResponse{Year: period.Year, Month: period.Month, CarryOver: carryOver})
}

// RecomputeMonth handles POST /months/:year/:month/recompute
func (h *MonthHandler) RecomputeMonth(c echo.Context) error {
	period, err := periodFromPath(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	snapshot, err := h.reconcileService.RecomputeMonth(period)
	if err != nil {
		return respondError(c, err, "Failed to recompute month")
	}

	log.Info().Int("year", period.Year).Int("month", period.Month).Msg("month recomputed")
	return c.JSON(http.StatusOK, snapshot)
}

// Backfill handles POST /months/backfill
func (h *MonthHandler) Backfill(c echo.Context) error {
	count, err := h.reconcileService.BackfillAllMonths()
	if err != nil {
		return respondError(c, err, "Failed to backfill months")
	}

	log.Info().Int("count", count).Msg("months backfilled")
	return c.JSON(http.StatusOK, BatchCountResponse{Count: int64(count)})
}
