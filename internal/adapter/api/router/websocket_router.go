package router

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo) {
	websocketHandler := handler.GetWebSocketHandler()

	// Token is taken from the query string inside the handler.
	e.GET("/ws", websocketHandler.HandleWebSocket)
}
