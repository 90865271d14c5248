package domain

import "time"

// Account is a user identity in the multi-user variant. The password is
// stored as a bcrypt hash and never leaves the auth service.
type Account struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// Create inserts an account, failing with ErrUsernameTaken on a
	// username collision.
	Create(account *Account) (*Account, error)
	GetByID(id int32) (*Account, error)
	GetByUsername(username string) (*Account, error)
}
