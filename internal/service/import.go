package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/export"
	"pocketledger/internal/ws"
)

// ImportError records one data row that could not be imported. Row is the
// 1-based position within the parsed rows.
type ImportError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// ImportResult summarizes an import: rows persisted and rows rejected
type ImportResult struct {
	Imported int           `json:"imported"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// ImportExpenses persists parsed CSV rows. Each row is validated the same
// way as a directly created expense. Unknown categories are created
// idempotently by name. Each row succeeds or fails on its own; one bad row
// never aborts the rest. A storage failure does abort, since later rows
// would fail the same way.
func (s *ExpenseService) ImportExpenses(ownerID *int32, rows []export.Row) (*ImportResult, error) {
	result := &ImportResult{}

	for i, row := range rows {
		if row.Amount.LessThanOrEqual(decimal.Zero) {
			result.Errors = append(result.Errors, ImportError{
				Row: i + 1,
				Err: domain.ErrInvalidAmount.Error(),
			})
			continue
		}
		if row.Date.IsZero() {
			result.Errors = append(result.Errors, ImportError{
				Row: i + 1,
				Err: domain.ErrInvalidDate.Error(),
			})
			continue
		}

		// Notes follow the same rules as a directly created expense:
		// trimmed, blank collapses to nil, over-long rejects the row.
		var notes *string
		if trimmed := strings.TrimSpace(row.Notes); trimmed != "" {
			if len(trimmed) > domain.MaxNotesLength {
				result.Errors = append(result.Errors, ImportError{
					Row: i + 1,
					Err: domain.ErrNotesTooLong.Error(),
				})
				continue
			}
			notes = &trimmed
		}

		category, err := s.categoryRepo.Create(&domain.Category{Name: row.Category})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", row.Category, err)
		}

		created, err := s.expenseRepo.Create(&domain.Expense{
			OwnerID:      ownerID,
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Date:         row.Date,
			Amount:       row.Amount,
			Notes:        notes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to import row %d: %w", i+1, err)
		}

		s.publisher.Publish(ws.OwnerKey(ownerID), ws.ExpenseCreated(created))
		result.Imported++
	}

	return result, nil
}
