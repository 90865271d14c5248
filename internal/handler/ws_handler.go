package handler

import (
	"net/http"

	gws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"pocketledger/internal/middleware"
	"pocketledger/internal/ws"
)

// SessionResolver resolves a session token to an account ID
type SessionResolver interface {
	Resolve(token string) (accountID int32, ok bool)
}

// WebSocketHandler handles WebSocket connections for live dashboard events
type WebSocketHandler struct {
	hub            *ws.Hub
	sessions       SessionResolver
	authRequired   bool
	allowedOrigins map[string]bool
	upgrader       gws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. When authRequired is
// false (single-user variant) connections without a token subscribe to the
// shared zero owner key.
func NewWebSocketHandler(hub *ws.Hub, sessions SessionResolver, authRequired bool, allowedOrigins []string) *WebSocketHandler {
	// Build origin lookup map
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		sessions:       sessions,
		authRequired:   authRequired,
		allowedOrigins: originMap,
	}

	h.upgrader = gws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., same-origin or non-browser clients)
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	ownerKey := int32(0)
	token := c.QueryParam("token")

	if h.authRequired {
		if token == "" {
			log.Debug().Msg("WebSocket connection rejected: missing token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		accountID, ok := h.sessions.Resolve(token)
		if !ok {
			log.Debug().Msg("WebSocket connection rejected: invalid session")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
		}
		ownerKey = accountID
	} else if id := middleware.GetOwnerID(c); id != nil {
		ownerKey = *id
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	// Create client and register with hub
	client := ws.NewClient(conn, ownerKey, h.hub)
	h.hub.Register(client)

	log.Info().
		Int32("owner_key", ownerKey).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	// Start read/write pumps in goroutines
	go client.WritePump()
	go client.ReadPump()

	return nil
}
