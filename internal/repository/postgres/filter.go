package postgres

import (
	"strconv"
	"strings"

	"pocketledger/internal/domain"
)

// predicate is one parameterized WHERE fragment. The expression uses ?
// for each argument; placeholders are renumbered when the clause is built
// so predicates compose in any order.
type predicate struct {
	expr string
	args []any
}

// whereBuilder composes predicates into a single parameterized WHERE clause.
// Values are never interpolated into the SQL text.
type whereBuilder struct {
	preds []predicate
}

func (b *whereBuilder) add(expr string, args ...any) {
	b.preds = append(b.preds, predicate{expr: expr, args: args})
}

// build returns the WHERE clause (empty string when no predicates were
// added) and the flattened argument list. Placeholder numbering starts at
// startIdx to allow arguments preceding the clause in the full query.
func (b *whereBuilder) build(startIdx int) (string, []any) {
	if len(b.preds) == 0 {
		return "", nil
	}

	var sb strings.Builder
	var args []any
	n := startIdx

	sb.WriteString(" WHERE ")
	for i, p := range b.preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		expr := p.expr
		for range p.args {
			expr = strings.Replace(expr, "?", "$"+strconv.Itoa(n), 1)
			n++
		}
		sb.WriteString(expr)
		args = append(args, p.args...)
	}

	return sb.String(), args
}

// expenseFilters translates domain filters into predicates over the
// expenses/categories join. Date bounds are inclusive; an empty category
// set means no category constraint.
func expenseFilters(f *domain.ExpenseFilters) *whereBuilder {
	b := &whereBuilder{}
	if f == nil {
		return b
	}
	if f.OwnerID != nil {
		b.add("e.owner_id = ?", *f.OwnerID)
	}
	if f.StartDate != nil {
		b.add("e.expense_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		b.add("e.expense_date <= ?", *f.EndDate)
	}
	if len(f.Categories) > 0 {
		b.add("c.name = ANY(?)", f.Categories)
	}
	return b
}
