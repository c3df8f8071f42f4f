package handler

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/usecase"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/response"
	"sponsorconnect/pkg/utils"
)

type MessageHandler struct {
	messagingUseCase *usecase.MessagingUseCase
}

func NewMessageHandler(messagingUseCase *usecase.MessagingUseCase) *MessageHandler {
	return &MessageHandler{
		messagingUseCase: messagingUseCase,
	}
}

func (h *MessageHandler) StartConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		RecipientID   string `json:"recipient_id" validate:"required"`
		SponsorshipID string `json:"sponsorship_id"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	conversation, err := h.messagingUseCase.StartConversation(c.Request().Context(), uid, req.RecipientID, req.SponsorshipID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *MessageHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	conversations, total, err := h.messagingUseCase.ListConversations(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, conversations, total, pagination.Page, pagination.PageSize)
}

func (h *MessageHandler) GetConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversation, err := h.messagingUseCase.GetConversation(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *MessageHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.messagingUseCase.ListMessages(c.Request().Context(), c.Param("id"), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messagingUseCase.SendMessage(c.Request().Context(), c.Param("id"), uid, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
