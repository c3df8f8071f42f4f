package router

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/handler"
	"sponsorconnect/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate)
	payments.POST("/intent", paymentHandler.CreateIntent, middleware.PaymentRateLimit())
	payments.POST("/complete", paymentHandler.Complete)

	agreements := e.Group("/v1/agreements")
	agreements.Use(authMiddleware.Authenticate)
	agreements.GET("", paymentHandler.ListAgreements)
	agreements.GET("/:id", paymentHandler.GetAgreement)
}
