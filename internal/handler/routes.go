package handler

import (
	"github.com/labstack/echo/v4"

	"pocketledger/internal/middleware"
)

// RegisterRoutes sets up all API routes. authMiddleware is nil in the
// single-user variant; protected groups are then left open and handlers
// see no owner.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, loginLimiter *middleware.RateLimiter, authHandler *AuthHandler, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, budgetHandler *BudgetHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	protect := func(g *echo.Group) {
		if authMiddleware != nil {
			g.Use(authMiddleware.Authenticate())
		}
	}

	// Auth routes
	if authHandler != nil {
		auth := api.Group("/auth")
		limited := middleware.RateLimitMiddleware(loginLimiter)
		auth.POST("/register", authHandler.Register, limited)
		auth.POST("/login", authHandler.Login, limited)

		authed := api.Group("/auth")
		protect(authed)
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/me", authHandler.Me)
	}

	// Category routes
	categories := api.Group("/categories")
	protect(categories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)

	// Expense routes
	expenses := api.Group("/expenses")
	protect(expenses)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", expenseHandler.GetSummary)
	expenses.GET("/export", expenseHandler.ExportCSV)
	expenses.POST("/import", expenseHandler.ImportCSV)

	// Budget routes
	budgets := api.Group("/budgets")
	protect(budgets)
	budgets.PUT("/:year/:month", budgetHandler.SetBudgets)
	budgets.GET("/:year/:month", budgetHandler.GetBudgets)
	budgets.GET("/:year/:month/report", budgetHandler.GetReport)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	protect(dashboard)
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// WebSocket endpoint authenticates via query token itself
	e.GET("/ws", wsHandler.HandleWS)
}
