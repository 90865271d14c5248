package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// OwnerIDKey is the context key for the authenticated account ID
	OwnerIDKey contextKey = "owner_id"
	// TokenKey is the context key for the raw session token
	TokenKey contextKey = "session_token"
)

// SessionResolver resolves a bearer token to an account ID
type SessionResolver interface {
	Resolve(token string) (accountID int32, ok bool)
}

// AuthMiddleware validates session bearer tokens
type AuthMiddleware struct {
	sessions SessionResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate returns an Echo middleware that resolves the session token
// and threads the authenticated account ID through the request context.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			accountID, ok := m.sessions.Resolve(token)
			if !ok {
				log.Debug().Msg("Session resolution failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			ctx := context.WithValue(c.Request().Context(), OwnerIDKey, accountID)
			ctx = context.WithValue(ctx, TokenKey, token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}

	return parts[1], nil
}

// GetOwnerID extracts the authenticated account ID from the context.
// It returns nil when the request is unauthenticated (single-user mode).
func GetOwnerID(c echo.Context) *int32 {
	if id, ok := c.Request().Context().Value(OwnerIDKey).(int32); ok {
		return &id
	}
	return nil
}

// GetSessionToken extracts the raw session token from the context
func GetSessionToken(c echo.Context) string {
	if token, ok := c.Request().Context().Value(TokenKey).(string); ok {
		return token
	}
	return ""
}
