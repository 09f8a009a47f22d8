package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/centime/centime-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTransactionHandler() (*TransactionHandler, *testutil.MockTransactionRepository, *testutil.MockAccountRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	subCategoryRepo := testutil.NewMockSubCategoryRepository()
	bucketRepo := testutil.NewMockBucketRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	balanceRepo := testutil.NewMockMonthlyBalanceRepository()
	reconciler := service.NewReconcileService(transactionRepo, budgetRepo, balanceRepo, nil)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo, categoryRepo, subCategoryRepo, bucketRepo, reconciler)
	return NewTransactionHandler(transactionService), transactionRepo, accountRepo
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, _, accountRepo := newTransactionHandler()

	accountRepo.AddAccount(&domain.Account{ID: "acc-checking", Name: "Checking", Kind: domain.AccountChecking})

	body := `{"label":"Groceries","amount":"-60.50","year":2026,"month":3,"status":"COMPLETED","accountId":"acc-checking"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Label != "Groceries" {
		t.Errorf("Expected label 'Groceries', got %s", response.Label)
	}
	if !response.Amount.Equal(decimal.NewFromFloat(-60.50)) {
		t.Errorf("Expected amount -60.50, got %s", response.Amount.String())
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	handler, _, accountRepo := newTransactionHandler()

	accountRepo.AddAccount(&domain.Account{ID: "acc-checking", Name: "Checking", Kind: domain.AccountChecking})

	body := `{"label":"Groceries","amount":"sixty","year":2026,"month":3,"accountId":"acc-checking"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	e := echo.New()
	handler, _, _ := newTransactionHandler()

	body := `{"label":"Groceries","amount":"-60","year":2026,"month":3,"accountId":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCancelTransaction_MissingNote(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, accountRepo := newTransactionHandler()

	accountRepo.AddAccount(&domain.Account{ID: "acc-checking", Name: "Checking", Kind: domain.AccountChecking})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", Label: "Groceries", Amount: decimal.NewFromInt(-60),
		Year: 2026, Month: 3, Status: domain.StatusCompleted, AccountID: "acc-checking",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/tx-1/cancel", strings.NewReader(`{"note":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-1")

	if err := handler.CancelTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCompleteAmex_Endpoint(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, accountRepo := newTransactionHandler()

	accountRepo.AddAccount(&domain.Account{ID: "acc-amex", Name: "Amex", Kind: domain.AccountCreditCard})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", Label: "Restaurant", Amount: decimal.NewFromInt(-45),
		Year: 2026, Month: 3, Status: domain.StatusPending, AccountID: "acc-amex", IsAmex: true,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/complete-amex?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CompleteAmex(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response BatchCountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Count != 1 {
		t.Errorf("Expected count 1, got %d", response.Count)
	}
}

func TestCopyRecurring_NothingToCopyReturnsConflict(t *testing.T) {
	e := echo.New()
	handler, _, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/copy-recurring?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CopyRecurring(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestGetTransactions_InvalidPeriod(t *testing.T) {
	e := echo.New()
	handler, _, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?year=2026&month=13", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
