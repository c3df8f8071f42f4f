package handler

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/usecase"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Phone       string `json:"phone"`
	Postcode    string `json:"postcode"`
	Location    string `json:"location"`
	Description string `json:"description"`
	BudgetRange string `json:"budget_range"`
}

// publicProfile hides contact details from other users.
type publicProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	if user.IsAdmin() {
		return response.Error(c, errors.NotFound("User", nil))
	}

	return response.Success(c, toPublicProfile(user))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Postcode:    req.Postcode,
		Location:    req.Location,
		Description: req.Description,
		BudgetRange: req.BudgetRange,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UploadLogo(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return response.Error(c, errors.BadRequest("Logo file is required", err))
	}

	const maxLogoSize = 5 << 20
	if fileHeader.Size > maxLogoSize {
		return response.Error(c, errors.Validation("Logo must be smaller than 5MB", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer file.Close()

	user, err := h.userUseCase.UploadLogo(c.Request().Context(), uid, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func toPublicProfile(user *entity.User) publicProfile {
	return publicProfile{
		ID:          user.ID,
		Name:        user.Name,
		Role:        user.Role,
		Location:    user.Location,
		Description: user.Description,
		LogoURL:     user.LogoURL,
	}
}
