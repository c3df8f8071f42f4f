package router

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupSponsorshipRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware)
	SetupMessageRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
