package router

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/handler"
	"sponsorconnect/internal/adapter/api/middleware"
)

func SetupSponsorshipRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	sponsorshipHandler := handler.GetSponsorshipHandler()

	public := e.Group("/v1/sponsorships")
	public.GET("", sponsorshipHandler.List)

	// Detail reads count views for signed-in non-owners, so identity is
	// resolved when present but never required.
	detail := e.Group("/v1/sponsorships")
	detail.Use(authMiddleware.OptionalAuthenticate)
	detail.GET("/:id", sponsorshipHandler.Get)

	authed := e.Group("/v1/sponsorships")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("", sponsorshipHandler.Create)
	authed.PUT("/:id", sponsorshipHandler.Update)
	authed.DELETE("/:id", sponsorshipHandler.Delete)
	authed.PATCH("/:id/status", sponsorshipHandler.SetStatus)
	authed.POST("/:id/interest", sponsorshipHandler.ToggleInterest)

	mine := e.Group("/v1/my-sponsorships")
	mine.Use(authMiddleware.Authenticate)
	mine.GET("", sponsorshipHandler.ListMine)
}
