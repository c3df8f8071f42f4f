package usecase

import (
	"context"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/logger"
)

// AdminUseCase backs the admin panel. Callers are already gated by the admin
// middleware; methods here assume the actor is an admin.
type AdminUseCase struct {
	userRepo        repository.UserRepository
	sponsorshipRepo repository.SponsorshipRepository
	agreementRepo   repository.AgreementRepository
	auth            AuthProvider
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	sponsorshipRepo repository.SponsorshipRepository,
	agreementRepo repository.AgreementRepository,
	auth AuthProvider,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:        userRepo,
		sponsorshipRepo: sponsorshipRepo,
		agreementRepo:   agreementRepo,
		auth:            auth,
	}
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, role, status string, limit, offset int) ([]*entity.User, int64, error) {
	filter := map[string]interface{}{}
	if role != "" {
		filter["role"] = role
	}
	if status != "" {
		filter["status"] = status
	}
	return uc.userRepo.List(ctx, filter, limit, offset)
}

// SetUserStatus suspends or reinstates an account. Suspended users fail the
// login check; existing bearer tokens are not revoked.
func (uc *AdminUseCase) SetUserStatus(ctx context.Context, userID, status string) (*entity.User, error) {
	if status != "active" && status != "suspended" {
		return nil, errors.Validation("Status must be active or suspended", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if user.IsAdmin() {
		return nil, errors.Forbidden("Admin accounts cannot be suspended", nil)
	}

	user.Status = status
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User %s status set to %s", userID, status)
	return user, nil
}

// DeleteUser removes the profile and the identity record. Sponsorships,
// agreements and conversations referencing the user are left in place.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}
	if user.IsAdmin() {
		return errors.Forbidden("Admin accounts cannot be deleted", nil)
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := uc.auth.DeleteUser(ctx, userID); err != nil {
		logger.Warn("Profile for %s deleted but identity record remains: %v", userID, err)
	}
	return nil
}

func (uc *AdminUseCase) ListAgreements(ctx context.Context, limit, offset int) ([]*entity.Agreement, int64, error) {
	return uc.agreementRepo.List(ctx, nil, limit, offset)
}

// SetAgreementStatus moves an agreement between active, completed, disputed
// and refunded. Refunds themselves happen in the processor dashboard; this
// only records the outcome.
func (uc *AdminUseCase) SetAgreementStatus(ctx context.Context, agreementID, status string) (*entity.Agreement, error) {
	if !entity.ValidAgreementStatus(status) {
		return nil, errors.Validation("Unknown agreement status", nil)
	}

	agreement, err := uc.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	agreement.Status = status
	if err := uc.agreementRepo.Update(ctx, agreement); err != nil {
		return nil, err
	}

	logger.Info("Agreement %s status set to %s", agreementID, status)
	return agreement, nil
}

// PlatformSummary aggregates the counts shown on the admin dashboard.
type PlatformSummary struct {
	TotalUsers         int64   `json:"totalUsers"`
	TotalClubs         int64   `json:"totalClubs"`
	TotalBusinesses    int64   `json:"totalBusinesses"`
	TotalSponsorships  int64   `json:"totalSponsorships"`
	ActiveSponsorships int64   `json:"activeSponsorships"`
	FundedSponsorships int64   `json:"fundedSponsorships"`
	TotalAgreements    int64   `json:"totalAgreements"`
	TotalFunded        float64 `json:"totalFunded"`
	TotalFees          float64 `json:"totalFees"`
}

func (uc *AdminUseCase) GetPlatformSummary(ctx context.Context) (*PlatformSummary, error) {
	summary := &PlatformSummary{}

	_, totalUsers, err := uc.userRepo.List(ctx, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	summary.TotalUsers = totalUsers

	_, clubs, err := uc.userRepo.List(ctx, map[string]interface{}{"role": entity.RoleClub}, 1, 0)
	if err != nil {
		return nil, err
	}
	summary.TotalClubs = clubs

	_, businesses, err := uc.userRepo.List(ctx, map[string]interface{}{"role": entity.RoleBusiness}, 1, 0)
	if err != nil {
		return nil, err
	}
	summary.TotalBusinesses = businesses

	_, totalSponsorships, err := uc.sponsorshipRepo.List(ctx, nil, "", 1, 0)
	if err != nil {
		return nil, err
	}
	summary.TotalSponsorships = totalSponsorships

	_, active, err := uc.sponsorshipRepo.List(ctx, map[string]interface{}{"status": entity.SponsorshipStatusActive}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	summary.ActiveSponsorships = active

	_, funded, err := uc.sponsorshipRepo.List(ctx, map[string]interface{}{"status": entity.SponsorshipStatusFunded}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	summary.FundedSponsorships = funded

	// Refunded agreements are excluded from revenue totals.
	offset := 0
	const page = 100
	for {
		agreements, total, err := uc.agreementRepo.List(ctx, nil, page, offset)
		if err != nil {
			return nil, err
		}
		summary.TotalAgreements = total
		for _, a := range agreements {
			if a.Status == entity.AgreementStatusRefunded {
				continue
			}
			summary.TotalFunded += a.Amount
			summary.TotalFees += a.PlatformFee
		}
		offset += len(agreements)
		if len(agreements) < page || int64(offset) >= total {
			break
		}
	}

	return summary, nil
}
