package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/service"
	"sponsorconnect/pkg/errors"
)

func newAdminEnv(t *testing.T) (*testEnv, *AdminUseCase) {
	env := newTestEnv(t)
	uc := NewAdminUseCase(env.userRepo, env.sponsorshipRepo, env.agreementRepo, nil)
	return env, uc
}

func TestSetUserStatus(t *testing.T) {
	env, uc := newAdminEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "admin-1", "Admin", entity.RoleAdmin)
	ctx := context.Background()

	user, err := uc.SetUserStatus(ctx, "club-1", "suspended")
	require.NoError(t, err)
	assert.Equal(t, "suspended", user.Status)

	user, err = uc.SetUserStatus(ctx, "club-1", "active")
	require.NoError(t, err)
	assert.Equal(t, "active", user.Status)

	_, err = uc.SetUserStatus(ctx, "club-1", "banned")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.SetUserStatus(ctx, "admin-1", "suspended")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListUsersFiltered(t *testing.T) {
	env, uc := newAdminEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "club-2", "Hillside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)

	clubs, total, err := uc.ListUsers(context.Background(), entity.RoleClub, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, clubs, 2)

	_, total, err = uc.ListUsers(context.Background(), "", "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestSetAgreementStatus(t *testing.T) {
	env, uc := newAdminEnv(t)
	ctx := context.Background()

	agreement := &entity.Agreement{
		SponsorshipID:    "s-1",
		ClubID:           "club-1",
		BusinessID:       "biz-1",
		Amount:           100,
		PlatformFee:      5,
		ClubAmount:       95,
		PaymentReference: "pi_1",
		Status:           entity.AgreementStatusActive,
	}
	require.NoError(t, env.agreementRepo.Create(ctx, agreement))

	updated, err := uc.SetAgreementStatus(ctx, agreement.ID, entity.AgreementStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, entity.AgreementStatusRefunded, updated.Status)

	_, err = uc.SetAgreementStatus(ctx, agreement.ID, "cancelled")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestPlatformSummary(t *testing.T) {
	env, uc := newAdminEnv(t)
	ctx := context.Background()

	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	env.seedUser(t, "admin-1", "Admin", entity.RoleAdmin)

	env.seedSponsorship(t, "club-1", 100)
	funded := env.seedSponsorship(t, "club-1", 1000)
	funded.Status = entity.SponsorshipStatusFunded
	require.NoError(t, env.sponsorshipRepo.Update(ctx, funded))

	calc := service.NewSplitCalculator(0.05)
	for i, amount := range []float64{1000, 250} {
		fee, club := calc.Split(amount)
		require.NoError(t, env.agreementRepo.Create(ctx, &entity.Agreement{
			SponsorshipID:    funded.ID,
			ClubID:           "club-1",
			BusinessID:       "biz-1",
			Amount:           amount,
			PlatformFee:      fee,
			ClubAmount:       club,
			PaymentReference: "pi_" + string(rune('a'+i)),
			Status:           entity.AgreementStatusActive,
		}))
	}

	// Refunded agreements are excluded from the revenue totals.
	refunded := &entity.Agreement{
		SponsorshipID:    funded.ID,
		ClubID:           "club-1",
		BusinessID:       "biz-1",
		Amount:           500,
		PlatformFee:      25,
		ClubAmount:       475,
		PaymentReference: "pi_refunded",
		Status:           entity.AgreementStatusRefunded,
	}
	require.NoError(t, env.agreementRepo.Create(ctx, refunded))

	summary, err := uc.GetPlatformSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalUsers)
	assert.Equal(t, int64(1), summary.TotalClubs)
	assert.Equal(t, int64(1), summary.TotalBusinesses)
	assert.Equal(t, int64(2), summary.TotalSponsorships)
	assert.Equal(t, int64(1), summary.ActiveSponsorships)
	assert.Equal(t, int64(1), summary.FundedSponsorships)
	assert.Equal(t, int64(3), summary.TotalAgreements)
	assert.Equal(t, 1250.0, summary.TotalFunded)
	assert.Equal(t, 62.50, summary.TotalFees)
}
