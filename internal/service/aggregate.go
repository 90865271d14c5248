package service

import (
	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
)

// TotalAmount sums the amount over a sequence of expenses. The sum is
// exact decimal arithmetic; an empty sequence yields zero.
func TotalAmount(expenses []*domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SumByCategory groups expenses by category name and sums each group.
// Output order is the first-seen order of category names in the input,
// which makes the result deterministic for a given sequence.
func SumByCategory(expenses []*domain.Expense) []domain.CategoryTotal {
	index := make(map[string]int)
	var totals []domain.CategoryTotal

	for _, e := range expenses {
		i, ok := index[e.CategoryName]
		if !ok {
			i = len(totals)
			index[e.CategoryName] = i
			totals = append(totals, domain.CategoryTotal{Category: e.CategoryName, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}

	return totals
}
