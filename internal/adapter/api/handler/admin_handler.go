package handler

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/usecase"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/response"
	"sponsorconnect/pkg/utils"
)

type AdminHandler struct {
	adminUseCase       *usecase.AdminUseCase
	sponsorshipUseCase *usecase.SponsorshipUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, sponsorshipUseCase *usecase.SponsorshipUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase:       adminUseCase,
		sponsorshipUseCase: sponsorshipUseCase,
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.adminUseCase.ListUsers(
		c.Request().Context(), c.QueryParam("role"), c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required,oneof=active suspended"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.SetUserStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.adminUseCase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "User deleted",
	})
}

// Sponsorship moderation reuses the lifecycle operations with the admin as
// actor; ownership checks pass because the actor has the admin role.

func (h *AdminHandler) SetSponsorshipStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sponsorship, err := h.sponsorshipUseCase.SetStatus(c.Request().Context(), c.Param("id"), req.Status, uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sponsorship)
}

func (h *AdminHandler) DeleteSponsorship(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.sponsorshipUseCase.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Sponsorship request deleted",
	})
}

func (h *AdminHandler) ListAgreements(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	agreements, total, err := h.adminUseCase.ListAgreements(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, agreements, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) SetAgreementStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	agreement, err := h.adminUseCase.SetAgreementStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, agreement)
}

func (h *AdminHandler) GetSummary(c echo.Context) error {
	summary, err := h.adminUseCase.GetPlatformSummary(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}
