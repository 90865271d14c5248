package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"pocketledger/internal/domain"
	"pocketledger/internal/middleware"
	"pocketledger/internal/service"
	"pocketledger/internal/session"
)

// AuthHandler handles registration, login and session management
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// CredentialsRequest represents the register/login request body
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID       int32  `json:"id"`
	Username string `json:"username"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username is required"},
			})
		}
		if errors.Is(err, domain.ErrUsernameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username must be 64 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		}
		if errors.Is(err, domain.ErrUsernameTaken) {
			return NewConflictError(c, "Username is already taken")
		}
		log.Error().Err(err).Msg("Failed to register account")
		return NewInternalError(c, "Failed to register account")
	}

	return c.JSON(http.StatusCreated, AccountResponse{
		ID:       account.ID,
		Username: account.Username,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid username or password")
		}
		log.Error().Err(err).Msg("Failed to verify credentials")
		return NewInternalError(c, "Failed to verify credentials")
	}

	sess := h.sessions.Issue(account.ID)

	return c.JSON(http.StatusOK, LoginResponse{
		Token: sess.Token,
		Account: AccountResponse{
			ID:       account.ID,
			Username: account.Username,
		},
	})
}

// Logout handles POST /auth/logout. It only clears the transient session;
// stored account data is untouched.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.GetSessionToken(c)
	if token != "" {
		h.sessions.Revoke(token)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	account, err := h.authService.GetAccount(*ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Msg("Failed to load account")
		return NewInternalError(c, "Failed to load account")
	}

	return c.JSON(http.StatusOK, AccountResponse{
		ID:       account.ID,
		Username: account.Username,
	})
}
