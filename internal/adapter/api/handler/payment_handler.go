package handler

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/usecase"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/response"
	"sponsorconnect/pkg/utils"
)

type PaymentHandler struct {
	fundingUseCase *usecase.FundingUseCase
}

func NewPaymentHandler(fundingUseCase *usecase.FundingUseCase) *PaymentHandler {
	return &PaymentHandler{
		fundingUseCase: fundingUseCase,
	}
}

// CreateIntent starts the card payment. The client confirms the returned
// client secret with the processor, then calls Complete.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		SponsorshipID string `json:"sponsorship_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	intent, err := h.fundingUseCase.CreateIntent(c.Request().Context(), req.SponsorshipID, uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, intent)
}

func (h *PaymentHandler) Complete(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		SponsorshipID   string `json:"sponsorship_id" validate:"required"`
		PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	agreement, err := h.fundingUseCase.CompleteFunding(c.Request().Context(), req.SponsorshipID, uid, req.PaymentIntentID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, agreement)
}

func (h *PaymentHandler) ListAgreements(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	agreements, total, err := h.fundingUseCase.ListAgreements(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, agreements, total, pagination.Page, pagination.PageSize)
}

func (h *PaymentHandler) GetAgreement(c echo.Context) error {
	uid := c.Get("uid").(string)

	agreement, err := h.fundingUseCase.GetAgreement(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, agreement)
}
