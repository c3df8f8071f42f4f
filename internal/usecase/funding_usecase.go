package usecase

import (
	"context"
	"fmt"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/domain/service"
	ws "sponsorconnect/internal/infrastructure/websocket"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/logger"
)

// FundingUseCase runs the two-step card funding workflow: create a payment
// intent with the processor, then, after the client confirms the card,
// record the agreement and mark the sponsorship funded.
type FundingUseCase struct {
	sponsorshipUC   *SponsorshipUseCase
	sponsorshipRepo repository.SponsorshipRepository
	agreementRepo   repository.AgreementRepository
	userRepo        repository.UserRepository
	payments        service.PaymentService
	split           *service.SplitCalculator
	wsManager       *ws.Manager
}

func NewFundingUseCase(
	sponsorshipUC *SponsorshipUseCase,
	sponsorshipRepo repository.SponsorshipRepository,
	agreementRepo repository.AgreementRepository,
	userRepo repository.UserRepository,
	payments service.PaymentService,
	split *service.SplitCalculator,
	wsManager *ws.Manager,
) *FundingUseCase {
	return &FundingUseCase{
		sponsorshipUC:   sponsorshipUC,
		sponsorshipRepo: sponsorshipRepo,
		agreementRepo:   agreementRepo,
		userRepo:        userRepo,
		payments:        payments,
		split:           split,
		wsManager:       wsManager,
	}
}

// FundingIntent is returned to the client so it can confirm the card payment
// against the processor directly.
type FundingIntent struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	Amount          float64 `json:"amount"`
	PlatformFee     float64 `json:"platformFee"`
	ClubAmount      float64 `json:"clubAmount"`
}

func (uc *FundingUseCase) CreateIntent(ctx context.Context, sponsorshipID, businessID string) (*FundingIntent, error) {
	business, err := uc.userRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, errors.NotFound("Business", err)
	}
	if business.Role != entity.RoleBusiness {
		return nil, errors.Forbidden("Only businesses can fund sponsorships", nil)
	}

	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, sponsorshipID)
	if err != nil {
		return nil, err
	}
	if sponsorship.Status != entity.SponsorshipStatusActive {
		if sponsorship.Status == entity.SponsorshipStatusFunded {
			return nil, errors.NotAvailable("This sponsorship has already been funded")
		}
		return nil, errors.NotAvailable("This sponsorship is not available for funding")
	}

	fee, club := uc.split.Split(sponsorship.Amount)
	amountMinor := service.ToMinorUnits(sponsorship.Amount)

	intent, err := uc.payments.CreatePaymentIntent(ctx, service.PaymentIntentRequest{
		AmountMinor:  amountMinor,
		FeeMinor:     service.ToMinorUnits(fee),
		Currency:     "gbp",
		Description:  fmt.Sprintf("Sponsorship: %s", sponsorship.Title),
		ReceiptEmail: business.Email,
		Metadata: map[string]string{
			"sponsorship_id": sponsorship.ID,
			"business_id":    businessID,
			"club_id":        sponsorship.ClubID,
		},
	})
	if err != nil {
		logger.LogFundingError("create_intent", sponsorshipID, err)
		return nil, errors.PaymentInit("Could not start the payment, please try again", err)
	}

	return &FundingIntent{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          sponsorship.Amount,
		PlatformFee:     fee,
		ClubAmount:      club,
	}, nil
}

// CompleteFunding records the agreement and flips the sponsorship to funded
// after the client reports the payment confirmed. The two writes are not
// atomic; if the second fails, the agreement stands and the sponsorship is
// reconciled by an admin. The payment reference is checked for reuse so a
// retried completion does not duplicate the agreement.
func (uc *FundingUseCase) CompleteFunding(ctx context.Context, sponsorshipID, businessID, paymentRef string) (*entity.Agreement, error) {
	if paymentRef == "" {
		return nil, errors.Validation("Payment reference is required", nil)
	}

	if existing, err := uc.agreementRepo.GetByPaymentReference(ctx, paymentRef); err == nil && existing != nil {
		return nil, errors.Conflict("This payment has already been recorded")
	}

	business, err := uc.userRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, errors.NotFound("Business", err)
	}
	if business.Role != entity.RoleBusiness {
		return nil, errors.Forbidden("Only businesses can fund sponsorships", nil)
	}

	sponsorship, err := uc.sponsorshipRepo.GetByID(ctx, sponsorshipID)
	if err != nil {
		return nil, err
	}
	if sponsorship.Status != entity.SponsorshipStatusActive {
		if sponsorship.Status == entity.SponsorshipStatusFunded {
			return nil, errors.NotAvailable("This sponsorship has already been funded")
		}
		return nil, errors.NotAvailable("This sponsorship is not available for funding")
	}

	intent, err := uc.payments.GetPaymentIntent(ctx, paymentRef)
	if err != nil {
		logger.LogFundingError("verify_intent", sponsorshipID, err)
		return nil, errors.PaymentInit("Could not verify the payment with the processor", err)
	}
	if intent.Status != "succeeded" {
		return nil, errors.BadRequest(fmt.Sprintf("Payment has not completed (status: %s)", intent.Status), nil)
	}

	fee, club := uc.split.Split(sponsorship.Amount)
	agreement := &entity.Agreement{
		SponsorshipID:    sponsorship.ID,
		SponsorshipTitle: sponsorship.Title,
		ClubID:           sponsorship.ClubID,
		ClubName:         sponsorship.ClubName,
		BusinessID:       businessID,
		BusinessName:     business.Name,
		Amount:           sponsorship.Amount,
		PlatformFee:      fee,
		ClubAmount:       club,
		PaymentReference: paymentRef,
		Status:           entity.AgreementStatusActive,
	}

	if err := uc.agreementRepo.Create(ctx, agreement); err != nil {
		return nil, err
	}

	if _, err := uc.sponsorshipUC.Fund(ctx, sponsorshipID, businessID, paymentRef); err != nil {
		// The agreement exists but the sponsorship was not marked funded.
		logger.Error("Agreement %s recorded but sponsorship %s transition failed: %v", agreement.ID, sponsorshipID, err)
		return nil, err
	}

	if uc.wsManager != nil {
		uc.wsManager.NotifyUser(sponsorship.ClubID, ws.Event{
			Type:    "sponsorship_funded",
			Payload: agreement,
		})
	}

	logger.Info("Agreement %s: %s funded %s for %.2f (fee %.2f)",
		agreement.ID, business.Name, sponsorship.Title, agreement.Amount, agreement.PlatformFee)

	return agreement, nil
}

// ListAgreements returns the caller's agreements, from either side.
func (uc *FundingUseCase) ListAgreements(ctx context.Context, userID string, limit, offset int) ([]*entity.Agreement, int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, errors.NotFound("User", err)
	}

	if user.Role == entity.RoleBusiness {
		return uc.agreementRepo.ListByBusinessID(ctx, userID, limit, offset)
	}
	return uc.agreementRepo.ListByClubID(ctx, userID, limit, offset)
}

func (uc *FundingUseCase) GetAgreement(ctx context.Context, id, userID string) (*entity.Agreement, error) {
	agreement, err := uc.agreementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	if agreement.ClubID != userID && agreement.BusinessID != userID && !user.IsAdmin() {
		return nil, errors.Forbidden("You are not a party to this agreement", nil)
	}

	return agreement, nil
}
