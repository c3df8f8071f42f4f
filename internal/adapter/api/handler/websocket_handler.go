package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/middleware"
	ws "sponsorconnect/internal/infrastructure/websocket"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the frontend origin in production
	},
}

var websocketHandler *WebSocketHandler

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
	}
}

func SetupWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware) {
	websocketHandler = NewWebSocketHandler(wsManager, authMiddleware)
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

// HandleWebSocket upgrades the connection and registers the client for push
// events. Browsers cannot set headers on WebSocket requests, so the token
// arrives as a query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		token := c.QueryParam("token")
		if token == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}
		userID = uid
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
