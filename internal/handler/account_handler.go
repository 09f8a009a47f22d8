package handler

import (
	"net/http"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account and bucket HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
	balanceService *service.BalanceService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService, balanceService *service.BalanceService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		balanceService: balanceService,
	}
}

// AccountRequest represents the create/update account request body
type AccountRequest struct {
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	Color           *string `json:"color"`
	Icon            *string `json:"icon"`
	SortOrder       int     `json:"sortOrder"`
	LinkedAccountID *string `json:"linkedAccountId"`
}

func (r *AccountRequest) toInput() service.AccountInput {
	return service.AccountInput{
		Name:            r.Name,
		Kind:            domain.AccountKind(r.Kind),
		Color:           r.Color,
		Icon:            r.Icon,
		SortOrder:       r.SortOrder,
		LinkedAccountID: r.LinkedAccountID,
	}
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.CreateAccount(req.toInput())
	if err != nil {
		return respondError(c, err, "Failed to create account")
	}

	log.Info().Str("account_id", account.ID).Str("name", account.Name).Msg("account created")
	return c.JSON(http.StatusCreated, account)
}

// GetAccounts handles GET /accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		return respondError(c, err, "Failed to list accounts")
	}
	return c.JSON(http.StatusOK, accounts)
}

// UpdateAccount handles PUT /accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.UpdateAccount(c.Param("id"), req.toInput())
	if err != nil {
		return respondError(c, err, "Failed to update account")
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /accounts/:id
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	if err := h.accountService.DeleteAccount(c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete account")
	}
	return c.NoContent(http.StatusNoContent)
}

// BalanceResponse carries a computed balance
type BalanceResponse struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// GetAccountBalance handles GET /accounts/:id/balance
func (h *AccountHandler) GetAccountBalance(c echo.Context) error {
	id := c.Param("id")
	balance, err := h.balanceService.AccountBalance(id)
	if err != nil {
		return respondError(c, err, "Failed to compute account balance")
	}
	return c.JSON(http.StatusOK, BalanceResponse{ID: id, Balance: balance})
}

// BucketRequest represents the create/update bucket request body
type BucketRequest struct {
	Name       string  `json:"name"`
	AccountID  string  `json:"accountId"`
	Color      *string `json:"color"`
	Goal       *string `json:"goal"`
	BaseAmount string  `json:"baseAmount"`
	SortOrder  int     `json:"sortOrder"`
}

func (r *BucketRequest) toInput(c echo.Context) (service.BucketInput, error) {
	input := service.BucketInput{
		Name:      r.Name,
		AccountID: r.AccountID,
		Color:     r.Color,
		SortOrder: r.SortOrder,
	}
	if r.Goal != nil {
		goal, err := decimal.NewFromString(*r.Goal)
		if err != nil {
			return service.BucketInput{}, NewValidationError(c, "Invalid goal", []ValidationError{
				{Field: "goal", Message: "Must be a valid decimal number"},
			})
		}
		input.Goal = &goal
	}
	if r.BaseAmount != "" {
		baseAmount, err := decimal.NewFromString(r.BaseAmount)
		if err != nil {
			return service.BucketInput{}, NewValidationError(c, "Invalid base amount", []ValidationError{
				{Field: "baseAmount", Message: "Must be a valid decimal number"},
			})
		}
		input.BaseAmount = baseAmount
	}
	return input, nil
}

// CreateBucket handles POST /buckets
func (h *AccountHandler) CreateBucket(c echo.Context) error {
	var req BucketRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, errResp := req.toInput(c)
	if errResp != nil {
		return errResp
	}

	bucket, err := h.accountService.CreateBucket(input)
	if err != nil {
		return respondError(c, err, "Failed to create bucket")
	}
	return c.JSON(http.StatusCreated, bucket)
}

// UpdateBucket handles PUT /buckets/:id
func (h *AccountHandler) UpdateBucket(c echo.Context) error {
	var req BucketRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	input, errResp := req.toInput(c)
	if errResp != nil {
		return errResp
	}

	bucket, err := h.accountService.UpdateBucket(c.Param("id"), input)
	if err != nil {
		return respondError(c, err, "Failed to update bucket")
	}
	return c.JSON(http.StatusOK, bucket)
}

// DeleteBucket handles DELETE /buckets/:id
func (h *AccountHandler) DeleteBucket(c echo.Context) error {
	if err := h.accountService.DeleteBucket(c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete bucket")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetBuckets handles GET /accounts/:id/buckets
func (h *AccountHandler) GetBuckets(c echo.Context) error {
	buckets, err := h.accountService.GetBuckets(c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to list buckets")
	}
	return c.JSON(http.StatusOK, buckets)
}

// GetBucketBalance handles GET /buckets/:id/balance
func (h *AccountHandler) GetBucketBalance(c echo.Context) error {
	id := c.Param("id")
	balance, err := h.balanceService.BucketBalance(id)
	if err != nil {
		return respondError(c, err, "Failed to compute bucket balance")
	}
	return c.JSON(http.StatusOK, BalanceResponse{ID: id, Balance: balance})
}
