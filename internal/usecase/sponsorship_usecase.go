package usecase

import (
	"context"
	"strings"
	"time"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	ws "sponsorconnect/internal/infrastructure/websocket"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/logger"
)

// SponsorshipUseCase governs the sponsorship request lifecycle:
// active -> funded, active <-> paused, active -> expired, any -> deleted.
type SponsorshipUseCase struct {
	sponsorshipRepo repository.SponsorshipRepository
	userRepo        repository.UserRepository
	wsManager       *ws.Manager
}

func NewSponsorshipUseCase(
	sponsorshipRepo repository.SponsorshipRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *SponsorshipUseCase {
	return &SponsorshipUseCase{
		sponsorshipRepo: sponsorshipRepo,
		userRepo:        userRepo,
		wsManager:       wsManager,
	}
}

type CreateSponsorshipInput struct {
	Title       string
	Description string
	Category    string
	Amount      float64
	Urgency     string
	Deadline    *time.Time
	Benefits    string
	Location    string
}

func (uc *SponsorshipUseCase) Create(ctx context.Context, clubID string, input CreateSponsorshipInput) (*entity.Sponsorship, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		input.Category == "" {
		return nil, errors.Validation("Title, description and category are required", nil)
	}
	if input.Amount <= 0 {
		return nil, errors.Validation("Amount must be greater than 0", nil)
	}
	if !entity.ValidSponsorshipCategory(input.Category) {
		return nil, errors.Validation("Unknown category", nil)
	}
	if input.Urgency == "" {
		input.Urgency = "medium"
	}
	switch input.Urgency {
	case "low", "medium", "high":
	default:
		return nil, errors.Validation("Urgency must be low, medium or high", nil)
	}

	club, err := uc.userRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, errors.NotFound("Club", err)
	}
	if club.Role != entity.RoleClub {
		return nil, errors.Forbidden("Only clubs can post sponsorship requests", nil)
	}

	sponsorship := &entity.Sponsorship{
		ClubID:               clubID,
		ClubName:             club.Name,
		Title:                input.Title,
		Description:          input.Description,
		Category:             input.Category,
		Amount:               input.Amount,
		Urgency:              input.Urgency,
		Status:               entity.SponsorshipStatusActive,
		Deadline:             input.Deadline,
		Benefits:             input.Benefits,
		Location:             input.Location,
		ViewCount:            0,
		InterestedBusinesses: []string{},
	}

	if err := uc.sponsorshipRepo.Create(ctx, sponsorship); err != nil {
		return nil, err
	}

	return sponsorship, nil
}

// GetByID returns a sponsorship and counts the view when the viewer is not
// the owning club. Repeat views by the same viewer all count.
func (uc *SponsorshipUseCase) GetByID(ctx context.Context, id, viewerID string) (*entity.Sponsorship, error) {
	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != sponsorship.ClubID {
		if err := uc.sponsorshipRepo.IncrementViews(ctx, id); err != nil {
			// A missed view count never fails the read.
			logger.Warn("Failed to record view for sponsorship %s: %v", id, err)
		} else {
			sponsorship.ViewCount++
		}
	}

	return sponsorship, nil
}

func (uc *SponsorshipUseCase) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Sponsorship, int64, error) {
	return uc.sponsorshipRepo.List(ctx, filter, sort, limit, offset)
}

func (uc *SponsorshipUseCase) ListByClubID(ctx context.Context, clubID, status string, limit, offset int) ([]*entity.Sponsorship, int64, error) {
	return uc.sponsorshipRepo.ListByClubID(ctx, clubID, status, limit, offset)
}

type UpdateSponsorshipInput struct {
	Title       string
	Description string
	Category    string
	Amount      float64
	Urgency     string
	Deadline    *time.Time
	Benefits    string
	Location    string
}

func (uc *SponsorshipUseCase) Update(ctx context.Context, id, clubID string, input UpdateSponsorshipInput) (*entity.Sponsorship, error) {
	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sponsorship.ClubID != clubID {
		return nil, errors.Forbidden("You can only edit your own sponsorship requests", nil)
	}
	if input.Amount <= 0 {
		return nil, errors.Validation("Amount must be greater than 0", nil)
	}
	if !entity.ValidSponsorshipCategory(input.Category) {
		return nil, errors.Validation("Unknown category", nil)
	}

	sponsorship.Title = input.Title
	sponsorship.Description = input.Description
	sponsorship.Category = input.Category
	sponsorship.Amount = input.Amount
	sponsorship.Urgency = input.Urgency
	sponsorship.Deadline = input.Deadline
	sponsorship.Benefits = input.Benefits
	sponsorship.Location = input.Location

	if err := uc.sponsorshipRepo.Update(ctx, sponsorship); err != nil {
		return nil, err
	}

	return sponsorship, nil
}

// ToggleInterest adds the business to the interested set if absent, removes
// it otherwise. Calling it twice restores the original set.
func (uc *SponsorshipUseCase) ToggleInterest(ctx context.Context, id, businessID string) (*entity.Sponsorship, error) {
	business, err := uc.userRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, errors.NotFound("Business", err)
	}
	if business.Role != entity.RoleBusiness {
		return nil, errors.Forbidden("Only businesses can register interest", nil)
	}

	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	interested := false
	for _, b := range sponsorship.InterestedBusinesses {
		if b == businessID {
			interested = true
			break
		}
	}

	if interested {
		err = uc.sponsorshipRepo.RemoveInterest(ctx, id, businessID)
	} else {
		err = uc.sponsorshipRepo.AddInterest(ctx, id, businessID)
	}
	if err != nil {
		return nil, err
	}

	return uc.sponsorshipRepo.GetByID(ctx, id)
}

// Fund transitions an active sponsorship to funded. There is no server-side
// lock: the status check and the write are separate operations, so two
// near-simultaneous funding attempts can race. The funding workflow re-checks
// status right before calling this.
func (uc *SponsorshipUseCase) Fund(ctx context.Context, id, businessID, paymentRef string) (*entity.Sponsorship, error) {
	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sponsorship.Status != entity.SponsorshipStatusActive {
		if sponsorship.Status == entity.SponsorshipStatusFunded {
			return nil, errors.NotAvailable("This sponsorship has already been funded")
		}
		return nil, errors.NotAvailable("This sponsorship is not available for funding")
	}

	now := time.Now()
	sponsorship.Status = entity.SponsorshipStatusFunded
	sponsorship.FundedBy = businessID
	sponsorship.FundedAt = &now

	if err := uc.sponsorshipRepo.Update(ctx, sponsorship); err != nil {
		return nil, err
	}

	logger.Info("Sponsorship %s funded by %s (payment %s)", id, businessID, paymentRef)
	return sponsorship, nil
}

// SetStatus is the owner/admin override. Any status may move to any other;
// admins use this to force transitions like funded -> active.
func (uc *SponsorshipUseCase) SetStatus(ctx context.Context, id, newStatus, actorID string) (*entity.Sponsorship, error) {
	if !entity.ValidSponsorshipStatus(newStatus) {
		return nil, errors.Validation("Unknown status", nil)
	}

	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if sponsorship.ClubID != actorID && !actor.IsAdmin() {
		return nil, errors.Forbidden("Only the owning club or an admin can change status", nil)
	}

	sponsorship.Status = newStatus
	if err := uc.sponsorshipRepo.Update(ctx, sponsorship); err != nil {
		return nil, err
	}

	if uc.wsManager != nil && actorID != sponsorship.ClubID {
		uc.wsManager.NotifyUser(sponsorship.ClubID, ws.Event{
			Type:    "sponsorship_status",
			Payload: sponsorship,
		})
	}

	return sponsorship, nil
}

// Delete removes the record permanently. Related agreements and conversations
// are left in place; orphan references are tolerated.
func (uc *SponsorshipUseCase) Delete(ctx context.Context, id, actorID string) error {
	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return errors.NotFound("User", err)
	}
	if sponsorship.ClubID != actorID && !actor.IsAdmin() {
		return errors.Forbidden("Only the owning club or an admin can delete this request", nil)
	}

	return uc.sponsorshipRepo.Delete(ctx, id)
}
