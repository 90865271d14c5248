package domain

import "errors"

// Domain errors
var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTooLong    = errors.New("username exceeds maximum length")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrNotesTooLong       = errors.New("notes exceed maximum length")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidDateRange   = errors.New("start date is after end date")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
)

// Validation constants
const (
	MaxCategoryNameLength = 64
	MaxUsernameLength     = 64
	MaxNotesLength        = 1000
	MinPasswordLength     = 8
)
