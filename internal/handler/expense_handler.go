package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/export"
	"pocketledger/internal/middleware"
	"pocketledger/internal/service"
)

// archiveURLExpiry bounds how long a presigned link to an archived export
// stays valid.
const archiveURLExpiry = 15 * time.Minute

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	archive        export.ArchiveRepository
}

// NewExpenseHandler creates a new ExpenseHandler. archive may be nil when
// no S3 bucket is configured.
func NewExpenseHandler(expenseService *service.ExpenseService, archive export.ArchiveRepository) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, archive: archive}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Date     string  `json:"date"`
	Amount   string  `json:"amount"`
	Category string  `json:"category"`
	Notes    *string `json:"notes,omitempty"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID       int32   `json:"id"`
	Date     string  `json:"date"`
	Amount   string  `json:"amount"`
	Category string  `json:"category"`
	Notes    *string `json:"notes,omitempty"`
}

// SummaryResponse represents the aggregated view of a filtered listing
type SummaryResponse struct {
	Total      string                 `json:"total"`
	ByCategory []domain.CategoryTotal `json:"byCategory"`
	Count      int                    `json:"count"`
}

// ImportResponse wraps an import result with the parse errors
type ImportResponse struct {
	Imported    int                   `json:"imported"`
	RowErrors   []service.ImportError `json:"rowErrors,omitempty"`
	ParseErrors []string              `json:"parseErrors,omitempty"`
}

func expenseToResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:       e.ID,
		Date:     e.Date.Format(export.DateLayout),
		Amount:   e.Amount.StringFixed(2),
		Category: e.CategoryName,
		Notes:    e.Notes,
	}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	date, err := time.Parse(export.DateLayout, req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	expense, err := h.expenseService.CreateExpense(middleware.GetOwnerID(c), service.CreateExpenseInput{
		Date:     date,
		Amount:   amount,
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Category not found"},
			})
		}
		if errors.Is(err, domain.ErrNotesTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "notes", Message: "Notes must be 1000 characters or less"},
			})
		}
		log.Error().Err(err).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	return c.JSON(http.StatusCreated, expenseToResponse(expense))
}

// GetExpenses handles GET /expenses?start=&end=&categories=a,b
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	expenses, err := h.listFromQuery(c)
	if err != nil {
		return err
	}
	if expenses == nil {
		return nil // response already written
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = expenseToResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

// GetSummary handles GET /expenses/summary with the same filters as GetExpenses
func (h *ExpenseHandler) GetSummary(c echo.Context) error {
	expenses, err := h.listFromQuery(c)
	if err != nil {
		return err
	}
	if expenses == nil {
		return nil
	}

	byCategory := service.SumByCategory(expenses)
	if byCategory == nil {
		byCategory = []domain.CategoryTotal{}
	}
	return c.JSON(http.StatusOK, SummaryResponse{
		Total:      service.TotalAmount(expenses).StringFixed(2),
		ByCategory: byCategory,
		Count:      len(expenses),
	})
}

// ExportCSV handles GET /expenses/export. The response is a CSV attachment;
// when an archive repository is configured and ?archive=true is set, the
// file is also uploaded and the object path returned in a header.
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	expenses, err := h.listFromQuery(c)
	if err != nil {
		return err
	}
	if expenses == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, expenses); err != nil {
		log.Error().Err(err).Msg("Failed to encode CSV export")
		return NewInternalError(c, "Failed to encode export")
	}

	if h.archive != nil && c.QueryParam("archive") == "true" {
		key := fmt.Sprintf("exports/%s/expenses-%s.csv",
			time.Now().UTC().Format("2006/01"), uuid.New().String())
		path, err := h.archive.Upload(c.Request().Context(), key,
			bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			log.Error().Err(err).Msg("Failed to archive CSV export")
			return NewInternalError(c, "Failed to archive export")
		}
		c.Response().Header().Set("X-Archive-Path", path)

		url, err := h.archive.GeneratePresignedURL(c.Request().Context(), path, archiveURLExpiry)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to presign archive URL")
		} else {
			c.Response().Header().Set("X-Archive-URL", url)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportCSV handles POST /expenses/import with a text/csv body
func (h *ExpenseHandler) ImportCSV(c echo.Context) error {
	rows, rowErrs, err := export.ReadCSV(c.Request().Body)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	result, err := h.expenseService.ImportExpenses(middleware.GetOwnerID(c), rows)
	if err != nil {
		log.Error().Err(err).Msg("Failed to import expenses")
		return NewInternalError(c, "Failed to import expenses")
	}

	resp := ImportResponse{
		Imported:  result.Imported,
		RowErrors: result.Errors,
	}
	for _, re := range rowErrs {
		resp.ParseErrors = append(resp.ParseErrors, re.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// listFromQuery parses the shared filter query parameters and fetches the
// matching expenses. On a filter error it writes the response itself and
// returns (nil, nil).
func (h *ExpenseHandler) listFromQuery(c echo.Context) ([]*domain.Expense, error) {
	var start, end *time.Time

	if v := c.QueryParam("start"); v != "" {
		parsed, err := time.Parse(export.DateLayout, v)
		if err != nil {
			return nil, NewValidationError(c, "Invalid start date", []ValidationError{
				{Field: "start", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		start = &parsed
	}
	if v := c.QueryParam("end"); v != "" {
		parsed, err := time.Parse(export.DateLayout, v)
		if err != nil {
			return nil, NewValidationError(c, "Invalid end date", []ValidationError{
				{Field: "end", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		end = &parsed
	}

	var categories []string
	if v := c.QueryParam("categories"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				categories = append(categories, name)
			}
		}
	}

	expenses, err := h.expenseService.ListExpenses(middleware.GetOwnerID(c), start, end, categories)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return nil, NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "start", Message: "Start date must not be after end date"},
			})
		}
		log.Error().Err(err).Msg("Failed to list expenses")
		return nil, NewInternalError(c, "Failed to list expenses")
	}

	if expenses == nil {
		expenses = []*domain.Expense{}
	}
	return expenses, nil
}
