package handler

import (
	"sponsorconnect/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	sponsorshipHandler *SponsorshipHandler
	paymentHandler     *PaymentHandler
	messageHandler     *MessageHandler
	adminHandler       *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	sponsorshipUseCase *usecase.SponsorshipUseCase,
	fundingUseCase *usecase.FundingUseCase,
	messagingUseCase *usecase.MessagingUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	sponsorshipHandler = NewSponsorshipHandler(sponsorshipUseCase)
	paymentHandler = NewPaymentHandler(fundingUseCase)
	messageHandler = NewMessageHandler(messagingUseCase)
	adminHandler = NewAdminHandler(adminUseCase, sponsorshipUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSponsorshipHandler() *SponsorshipHandler {
	return sponsorshipHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
