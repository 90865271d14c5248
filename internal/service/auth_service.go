package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pocketledger/internal/domain"
)

// AuthService handles account registration and credential verification
type AuthService struct {
	accountRepo domain.AccountRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo domain.AccountRepository) *AuthService {
	return &AuthService{accountRepo: accountRepo}
}

// Register creates a new account with a bcrypt password hash. A username
// collision fails with domain.ErrUsernameTaken.
func (s *AuthService) Register(username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if len(username) > domain.MaxUsernameLength {
		return nil, domain.ErrUsernameTooLong
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.accountRepo.Create(&domain.Account{
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Login verifies a username/password pair and returns the account.
// Unknown usernames and wrong passwords both fail with
// domain.ErrInvalidCredentials to avoid leaking which usernames exist.
func (s *AuthService) Login(username, password string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AuthService) GetAccount(id int32) (*domain.Account, error) {
	return s.accountRepo.GetByID(id)
}
