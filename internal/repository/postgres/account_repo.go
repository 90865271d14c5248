package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pocketledger/internal/domain"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation
const uniqueViolation = "23505"

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account. A username collision fails with
// domain.ErrUsernameTaken, never a silent no-op.
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()

	created := &domain.Account{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash) VALUES ($1, $2)
		 RETURNING id, created_at`,
		account.Username, account.PasswordHash).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return created, nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(id int32) (*domain.Account, error) {
	ctx := context.Background()

	account := &domain.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM accounts WHERE id = $1`, id).
		Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetByUsername retrieves an account with its stored credential hash
func (r *AccountRepository) GetByUsername(username string) (*domain.Account, error) {
	ctx := context.Background()

	account := &domain.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM accounts WHERE username = $1`, username).
		Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
