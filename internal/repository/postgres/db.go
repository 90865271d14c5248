package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pocketledger/internal/domain"
)

// schema is applied on every start. Statements are create-if-absent and
// never destructive, so InitSchema is safe to call repeatedly.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id SERIAL PRIMARY KEY,
		owner_id INTEGER REFERENCES accounts(id),
		category_id INTEGER NOT NULL REFERENCES categories(id),
		expense_date DATE NOT NULL,
		amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_owner_date
		ON expenses (owner_id, expense_date DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id SERIAL PRIMARY KEY,
		owner_id INTEGER REFERENCES accounts(id),
		category_id INTEGER NOT NULL REFERENCES categories(id),
		year INTEGER NOT NULL,
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_budgets_owner_category_month
		ON budgets (COALESCE(owner_id, 0), category_id, year, month)`,
}

// InitSchema ensures all tables exist and the default categories are seeded.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	for _, name := range domain.DefaultCategories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	return nil
}
