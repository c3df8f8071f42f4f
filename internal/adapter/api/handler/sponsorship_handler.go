package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/usecase"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/response"
	"sponsorconnect/pkg/utils"
)

type SponsorshipHandler struct {
	sponsorshipUseCase *usecase.SponsorshipUseCase
}

func NewSponsorshipHandler(sponsorshipUseCase *usecase.SponsorshipUseCase) *SponsorshipHandler {
	return &SponsorshipHandler{
		sponsorshipUseCase: sponsorshipUseCase,
	}
}

type sponsorshipRequest struct {
	Title       string  `json:"title" validate:"required,min=5,max=120"`
	Description string  `json:"description" validate:"required,min=20"`
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0,max=1000000"`
	Urgency     string  `json:"urgency" validate:"omitempty,oneof=low medium high"`
	Deadline    string  `json:"deadline"`
	Benefits    string  `json:"benefits"`
	Location    string  `json:"location"`
}

func (r *sponsorshipRequest) parsedDeadline() (*time.Time, error) {
	if r.Deadline == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, r.Deadline)
	if err != nil {
		// Date-only input comes from the deadline picker.
		t, err = time.Parse("2006-01-02", r.Deadline)
		if err != nil {
			return nil, errors.Validation("Deadline must be an ISO 8601 date", err)
		}
	}
	return &t, nil
}

// List is the public browse endpoint. Filters: status, category, urgency,
// club_id; sort: newest, amount_asc, amount_desc, most_viewed.
func (h *SponsorshipHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := map[string]interface{}{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	} else {
		filter["status"] = "active"
	}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}
	if urgency := c.QueryParam("urgency"); urgency != "" {
		filter["urgency"] = urgency
	}
	if clubID := c.QueryParam("club_id"); clubID != "" {
		filter["clubId"] = clubID
	}

	sponsorships, total, err := h.sponsorshipUseCase.List(
		c.Request().Context(), filter, sortKey(c.QueryParam("sort")), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, sponsorships, total, pagination.Page, pagination.PageSize)
}

func sortKey(sort string) string {
	switch sort {
	case "amount_asc", "amount_desc":
		return sort
	case "most_viewed":
		return "viewCount_desc"
	case "oldest":
		return "createdAt_asc"
	default:
		return "createdAt_desc"
	}
}

func (h *SponsorshipHandler) Get(c echo.Context) error {
	viewerID, _ := c.Get("uid").(string)

	sponsorship, err := h.sponsorshipUseCase.GetByID(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sponsorship)
}

func (h *SponsorshipHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	sponsorships, total, err := h.sponsorshipUseCase.ListByClubID(
		c.Request().Context(), uid, c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, sponsorships, total, pagination.Page, pagination.PageSize)
}

func (h *SponsorshipHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req sponsorshipRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	deadline, err := req.parsedDeadline()
	if err != nil {
		return response.Error(c, err)
	}

	sponsorship, err := h.sponsorshipUseCase.Create(c.Request().Context(), uid, usecase.CreateSponsorshipInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Urgency:     req.Urgency,
		Deadline:    deadline,
		Benefits:    req.Benefits,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, sponsorship)
}

func (h *SponsorshipHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req sponsorshipRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	deadline, err := req.parsedDeadline()
	if err != nil {
		return response.Error(c, err)
	}

	sponsorship, err := h.sponsorshipUseCase.Update(c.Request().Context(), c.Param("id"), uid, usecase.UpdateSponsorshipInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Urgency:     req.Urgency,
		Deadline:    deadline,
		Benefits:    req.Benefits,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sponsorship)
}

func (h *SponsorshipHandler) SetStatus(c echo.Context) error {
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

func (h *SponsorshipHandler) ToggleInterest(c echo.Context) error {
	uid := c.Get("uid").(string)

	sponsorship, err := h.sponsorshipUseCase.ToggleInterest(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sponsorship)
}

func (h *SponsorshipHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.sponsorshipUseCase.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Sponsorship request deleted",
	})
}
