package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/service"
	"sponsorconnect/pkg/errors"
)

type fakePaymentService struct {
	intents    map[string]*service.PaymentIntentResponse
	lastReq    service.PaymentIntentRequest
	failCreate bool
	counter    int
}

func newFakePaymentService() *fakePaymentService {
	return &fakePaymentService{intents: make(map[string]*service.PaymentIntentResponse)}
}

func (f *fakePaymentService) CreatePaymentIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error) {
	if f.failCreate {
		return nil, stderrors.New("processor unreachable")
	}
	f.lastReq = req
	f.counter++
	intent := &service.PaymentIntentResponse{
		ID:           fmt.Sprintf("pi_test_%d", f.counter),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", f.counter),
		Status:       "requires_payment_method",
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakePaymentService) GetPaymentIntent(ctx context.Context, id string) (*service.PaymentIntentResponse, error) {
	intent, ok := f.intents[id]
	if !ok {
		return nil, stderrors.New("no such payment_intent")
	}
	return intent, nil
}

func (f *fakePaymentService) succeed(id string) {
	f.intents[id].Status = "succeeded"
}

func newFundingEnv(t *testing.T) (*testEnv, *FundingUseCase, *fakePaymentService) {
	env := newTestEnv(t)
	payments := newFakePaymentService()
	sponsorshipUC := NewSponsorshipUseCase(env.sponsorshipRepo, env.userRepo, nil)
	uc := NewFundingUseCase(
		sponsorshipUC, env.sponsorshipRepo, env.agreementRepo, env.userRepo,
		payments, service.NewSplitCalculator(0.05), nil)
	return env, uc, payments
}

func TestCreateIntent(t *testing.T) {
	env, uc, payments := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)

	intent, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)

	assert.NotEmpty(t, intent.ClientSecret)
	assert.Equal(t, 1000.0, intent.Amount)
	assert.Equal(t, 50.0, intent.PlatformFee)
	assert.Equal(t, 950.0, intent.ClubAmount)

	// The processor is charged in pence.
	assert.Equal(t, int64(100000), payments.lastReq.AmountMinor)
	assert.Equal(t, int64(5000), payments.lastReq.FeeMinor)
	assert.Equal(t, "gbp", payments.lastReq.Currency)
	assert.Equal(t, sponsorship.ID, payments.lastReq.Metadata["sponsorship_id"])
}

func TestCreateIntentRejectsNonBusiness(t *testing.T) {
	env, uc, _ := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "club-2", "Hillside FC", entity.RoleClub)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)

	_, err := uc.CreateIntent(context.Background(), sponsorship.ID, "club-2")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateIntentRejectsNonActiveSponsorship(t *testing.T) {
	env, uc, _ := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)
	sponsorship.Status = entity.SponsorshipStatusFunded
	require.NoError(t, env.sponsorshipRepo.Update(context.Background(), sponsorship))

	_, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	assert.True(t, errors.Is(err, "NOT_AVAILABLE"))
}

func TestCreateIntentWrapsProcessorFailure(t *testing.T) {
	env, uc, payments := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)
	payments.failCreate = true

	_, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	assert.True(t, errors.Is(err, "PAYMENT_INIT"))
}

func TestCompleteFunding(t *testing.T) {
	env, uc, payments := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)

	intent, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)
	payments.succeed(intent.PaymentIntentID)

	agreement, err := uc.CompleteFunding(context.Background(), sponsorship.ID, "biz-1", intent.PaymentIntentID)
	require.NoError(t, err)

	assert.Equal(t, entity.AgreementStatusActive, agreement.Status)
	assert.Equal(t, 1000.0, agreement.Amount)
	assert.Equal(t, 50.0, agreement.PlatformFee)
	assert.Equal(t, 950.0, agreement.ClubAmount)
	assert.Equal(t, "Acme Ltd", agreement.BusinessName)
	assert.Equal(t, intent.PaymentIntentID, agreement.PaymentReference)

	funded, err := env.sponsorshipRepo.GetByID(context.Background(), sponsorship.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SponsorshipStatusFunded, funded.Status)
	assert.Equal(t, "biz-1", funded.FundedBy)
}

func TestCompleteFundingRejectsSecondAttempt(t *testing.T) {
	env, uc, payments := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	env.seedUser(t, "biz-2", "Globex Plc", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)

	intent, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)
	payments.succeed(intent.PaymentIntentID)

	_, err = uc.CompleteFunding(context.Background(), sponsorship.ID, "biz-1", intent.PaymentIntentID)
	require.NoError(t, err)

	// Same payment reference replayed.
	_, err = uc.CompleteFunding(context.Background(), sponsorship.ID, "biz-1", intent.PaymentIntentID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	// A different business against the now-funded sponsorship.
	second, err := payments.CreatePaymentIntent(context.Background(), service.PaymentIntentRequest{})
	require.NoError(t, err)
	payments.succeed(second.ID)
	_, err = uc.CompleteFunding(context.Background(), sponsorship.ID, "biz-2", second.ID)
	assert.True(t, errors.Is(err, "NOT_AVAILABLE"))
}

func TestCompleteFundingRequiresSucceededIntent(t *testing.T) {
	env, uc, _ := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 1000)

	intent, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)

	// Intent was created but the card was never confirmed.
	_, err = uc.CompleteFunding(context.Background(), sponsorship.ID, "biz-1", intent.PaymentIntentID)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListAgreementsByRole(t *testing.T) {
	env, uc, payments := newFundingEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 500)

	intent, err := uc.CreateIntent(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)
	payments.succeed(intent.PaymentIntentID)
	_, err = uc.CompleteFunding(context.Background(), sponsorship.ID, "biz-1", intent.PaymentIntentID)
	require.NoError(t, err)

	clubSide, total, err := uc.ListAgreements(context.Background(), "club-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clubSide, 1)

	bizSide, total, err := uc.ListAgreements(context.Background(), "biz-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, clubSide[0].ID, bizSide[0].ID)
}
