package router

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/handler"
	"sponsorconnect/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	admin.PATCH("/sponsorships/:id/status", adminHandler.SetSponsorshipStatus)
	admin.DELETE("/sponsorships/:id", adminHandler.DeleteSponsorship)

	admin.GET("/agreements", adminHandler.ListAgreements)
	admin.PATCH("/agreements/:id/status", adminHandler.SetAgreementStatus)

	admin.GET("/summary", adminHandler.GetSummary)
}
