package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, accountHandler *AccountHandler, categoryHandler *CategoryHandler, transactionHandler *TransactionHandler, budgetHandler *BudgetHandler, monthHandler *MonthHandler, dashboardHandler *DashboardHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/balance", accountHandler.GetAccountBalance)
	accounts.GET("/:id/buckets", accountHandler.GetBuckets)

	buckets := api.Group("/buckets")
	buckets.POST("", accountHandler.CreateBucket)
	buckets.PUT("/:id", accountHandler.UpdateBucket)
	buckets.DELETE("/:id", accountHandler.DeleteBucket)
	buckets.GET("/:id/balance", accountHandler.GetBucketBalance)

	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/subcategories", categoryHandler.CreateSubCategory)
	categories.GET("/:id/subcategories", categoryHandler.GetSubCategories)
	categories.PUT("/:id/subcategories/:subId", categoryHandler.UpdateSubCategory)
	categories.DELETE("/:id/subcategories/:subId", categoryHandler.DeleteSubCategory)

	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("/complete-amex", transactionHandler.CompleteAmex)
	transactions.POST("/copy-recurring", transactionHandler.CopyRecurring)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/complete", transactionHandler.CompleteTransaction)
	transactions.POST("/:id/cancel", transactionHandler.CancelTransaction)

	budgets := api.Group("/budgets")
	budgets.PUT("", budgetHandler.UpsertBudget)
	budgets.GET("/summary", budgetHandler.GetSummary)
	budgets.POST("/copy-previous", budgetHandler.CopyPrevious)
	budgets.POST("/calibrate", budgetHandler.Calibrate)

	months := api.Group("/months")
	months.POST("/backfill", monthHandler.Backfill)
	months.GET("/:year/:month", monthHandler.GetMonth)
	months.GET("/:year/:month/carry-over", monthHandler.GetCarryOver)
	months.POST("/:year/:month/recompute", monthHandler.RecomputeMonth)

	api.GET("/dashboard", dashboardHandler.GetDashboard)
}
