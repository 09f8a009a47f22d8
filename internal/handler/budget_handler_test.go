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

func newBudgetHandler() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockCategoryRepository, *testutil.MockTransactionRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	balanceRepo := testutil.NewMockMonthlyBalanceRepository()
	reconciler := service.NewReconcileService(transactionRepo, budgetRepo, balanceRepo, nil)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, transactionRepo, reconciler)
	return NewBudgetHandler(budgetService), budgetRepo, categoryRepo, transactionRepo
}

func TestUpsertBudget_Endpoint(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, categoryRepo, _ := newBudgetHandler()

	categoryRepo.AddCategory(&domain.Category{ID: "cat-loisirs", Name: "Loisirs"})

	body := `{"categoryId":"cat-loisirs","year":2026,"month":3,"amount":"150"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.UpsertBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(budgetRepo.Budgets) != 1 {
		t.Errorf("Expected 1 budget row, got %d", len(budgetRepo.Budgets))
	}
}

func TestUpsertBudget_NegativeAmount(t *testing.T) {
	e := echo.New()
	handler, _, categoryRepo, _ := newBudgetHandler()

	categoryRepo.AddCategory(&domain.Category{ID: "cat-loisirs", Name: "Loisirs"})

	body := `{"categoryId":"cat-loisirs","year":2026,"month":3,"amount":"-5"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.UpsertBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_Endpoint(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, categoryRepo, transactionRepo := newBudgetHandler()

	categoryRepo.AddCategory(&domain.Category{ID: "cat-loisirs", Name: "Loisirs"})
	budgetRepo.AddBudget(&domain.Budget{CategoryID: "cat-loisirs", Year: 2026, Month: 3, Amount: decimal.NewFromInt(150)})

	loisirs := "cat-loisirs"
	transactionRepo.AddTransaction(&domain.Transaction{
		ID: "tx-1", Label: "Cinema", Amount: decimal.NewFromInt(-60),
		Year: 2026, Month: 3, Status: domain.StatusCompleted,
		AccountID: "acc-checking", CategoryID: &loisirs,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/summary?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []*service.CategoryBudget
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 summary row, got %d", len(response))
	}
	if !response[0].Remaining.Equal(decimal.NewFromInt(90)) {
		t.Errorf("Expected remaining 90, got %s", response[0].Remaining.String())
	}
}

func TestCalibrate_NothingToCalibrateReturnsConflict(t *testing.T) {
	e := echo.New()
	handler, _, _, _ := newBudgetHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets/calibrate?year=2026&month=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Calibrate(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}
