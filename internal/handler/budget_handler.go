package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/middleware"
	"pocketledger/internal/service"
)

// BudgetHandler handles monthly budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest is one category allocation in a set request
type SetBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// SetBudgets handles PUT /budgets/:year/:month with a list of allocations
func (h *BudgetHandler) SetBudgets(c echo.Context) error {
	year, month, ok, rerr := yearMonthParams(c)
	if !ok {
		return rerr
	}

	var reqs []SetBudgetRequest
	if err := c.Bind(&reqs); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	ownerID := middleware.GetOwnerID(c)
	budgets := make([]*domain.Budget, 0, len(reqs))
	for _, req := range reqs {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}

		budget, err := h.budgetService.SetBudget(ownerID, req.Category, year, month, amount)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidMonth) {
				return NewValidationError(c, "Month must be between 1 and 12", nil)
			}
			if errors.Is(err, domain.ErrInvalidAmount) {
				return NewValidationError(c, "Validation failed", []ValidationError{
					{Field: "amount", Message: "Amount must not be negative"},
				})
			}
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return NewValidationError(c, "Validation failed", []ValidationError{
					{Field: "category", Message: "Category not found"},
				})
			}
			log.Error().Err(err).Msg("Failed to set budget")
			return NewInternalError(c, "Failed to set budget")
		}
		budgets = append(budgets, budget)
	}

	return c.JSON(http.StatusOK, budgets)
}

// GetBudgets handles GET /budgets/:year/:month
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	year, month, ok, rerr := yearMonthParams(c)
	if !ok {
		return rerr
	}

	budgets, err := h.budgetService.GetBudgets(middleware.GetOwnerID(c), year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Month must be between 1 and 12", nil)
		}
		log.Error().Err(err).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	if budgets == nil {
		budgets = []*domain.Budget{}
	}
	return c.JSON(http.StatusOK, budgets)
}

// GetReport handles GET /budgets/:year/:month/report
func (h *BudgetHandler) GetReport(c echo.Context) error {
	year, month, ok, rerr := yearMonthParams(c)
	if !ok {
		return rerr
	}

	report, err := h.budgetService.BudgetReport(middleware.GetOwnerID(c), year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Month must be between 1 and 12", nil)
		}
		log.Error().Err(err).Msg("Failed to build budget report")
		return NewInternalError(c, "Failed to build budget report")
	}

	if report == nil {
		report = []*domain.BudgetStatus{}
	}
	return c.JSON(http.StatusOK, report)
}

// yearMonthParams parses the path parameters. When ok is false the
// validation response has been written and the handler should return rerr.
func yearMonthParams(c echo.Context) (year, month int, ok bool, rerr error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, false, NewValidationError(c, "Invalid year", nil)
	}
	month, err = strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, false, NewValidationError(c, "Invalid month", nil)
	}
	return year, month, true, nil
}
