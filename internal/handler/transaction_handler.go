package handler

import (
	"net/http"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body.
// Amount is signed from the source account's perspective.
type TransactionRequest struct {
	Label                string  `json:"label"`
	Amount               string  `json:"amount"`
	Date                 *string `json:"date"`
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	Status               string  `json:"status"`
	Note                 *string `json:"note"`
	AccountID            string  `json:"accountId"`
	DestinationAccountID *string `json:"destinationAccountId"`
	CategoryID           *string `json:"categoryId"`
	SubCategoryID        *string `json:"subCategoryId"`
	BucketID             *string `json:"bucketId"`
	IsAmex               bool    `json:"isAmex"`
	Recurring            bool    `json:"recurring"`
}

func (r *TransactionRequest) toInput(c echo.Context) (service.TransactionInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.TransactionInput{}, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date *time.Time
	if r.Date != nil && *r.Date != "" {
		parsed, err := time.Parse("2006-01-02", *r.Date)
		if err != nil {
			return service.TransactionInput{}, NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be formatted YYYY-MM-DD"},
			})
		}
		date = &parsed
	}

	return service.TransactionInput{
		Label:                r.Label,
		Amount:               amount,
		Date:                 date,
		Month:                r.Month,
		Year:                 r.Year,
		Status:               domain.TransactionStatus(r.Status),
		Note:                 r.Note,
		AccountID:            r.AccountID,
		DestinationAccountID: r.DestinationAccountID,
		CategoryID:           r.CategoryID,
		SubCategoryID:        r.SubCategoryID,
		BucketID:             r.BucketID,
		IsAmex:               r.IsAmex,
		Recurring:            r.Recurring,
	}, nil
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, errResp := req.toInput(c)
	if errResp != nil {
		return errResp
	}

	transaction, err := h.transactionService.Create(input)
	if err != nil {
		return respondError(c, err, "Failed to create transaction")
	}

	log.Info().Str("transaction_id", transaction.ID).Str("label", transaction.Label).Msg("transaction created")
	return c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles GET /transactions?year=&month=
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	transactions, err := h.transactionService.ListByPeriod(period)
	if err != nil {
		return respondError(c, err, "Failed to list transactions")
	}
	return c.JSON(http.StatusOK, transactions)
}

// GetTransaction handles GET /transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	transaction, err := h.transactionService.GetByID(c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get transaction")
	}
	return c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles PUT /transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, errResp := req.toInput(c)
	if errResp != nil {
		return errResp
	}

	transaction, err := h.transactionService.Update(c.Param("id"), input)
	if err != nil {
		return respondError(c, err, "Failed to update transaction")
	}
	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE /transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	if err := h.transactionService.Delete(c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete transaction")
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteTransaction handles POST /transactions/:id/complete
func (h *TransactionHandler) CompleteTransaction(c echo.Context) error {
	transaction, err := h.transactionService.Complete(c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to complete transaction")
	}
	return c.JSON(http.StatusOK, transaction)
}

// CancelRequest represents the cancel transaction request body
type CancelRequest struct {
	Note string `json:"note"`
}

// CancelTransaction handles POST /transactions/:id/cancel
func (h *TransactionHandler) CancelTransaction(c echo.Context) error {
	var req CancelRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.Cancel(c.Param("id"), req.Note)
	if err != nil {
		return respondError(c, err, "Failed to cancel transaction")
	}
	return c.JSON(http.StatusOK, transaction)
}

// BatchCountResponse reports how many rows a batch operation touched
type BatchCountResponse struct {
	Count int64 `json:"count"`
}

// CompleteAmex handles POST /transactions/complete-amex?year=&month=
func (h *TransactionHandler) CompleteAmex(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	count, err := h.transactionService.CompleteAmex(period)
	if err != nil {
		return respondError(c, err, "Failed to complete deferred-debit transactions")
	}

	log.Info().Int("year", period.Year).Int("month", period.Month).Int64("count", count).Msg("deferred-debit transactions completed")
	return c.JSON(http.StatusOK, BatchCountResponse{Count: count})
}

// CopyRecurring handles POST /transactions/copy-recurring?year=&month=
func (h *TransactionHandler) CopyRecurring(c echo.Context) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid period")
	}

	count, err := h.transactionService.CopyRecurring(period)
	if err != nil {
		return respondError(c, err, "Failed to copy recurring transactions")
	}

	log.Info().Int("year", period.Year).Int("month", period.Month).Int("count", count).Msg("recurring transactions copied")
	return c.JSON(http.StatusOK, BatchCountResponse{Count: int64(count)})
}
