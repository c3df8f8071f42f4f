package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/pkg/errors"
)

func newSponsorshipUseCase(env *testEnv) *SponsorshipUseCase {
	return NewSponsorshipUseCase(env.sponsorshipRepo, env.userRepo, nil)
}

func TestCreateSponsorship(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	uc := newSponsorshipUseCase(env)

	sponsorship, err := uc.Create(context.Background(), "club-1", CreateSponsorshipInput{
		Title:       "New kit for under-12s",
		Description: "Full home and away kit for twenty players next season.",
		Category:    "equipment",
		Amount:      1500,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sponsorship.ID)
	assert.Equal(t, entity.SponsorshipStatusActive, sponsorship.Status)
	assert.Equal(t, "Riverside FC", sponsorship.ClubName)
	assert.Equal(t, "medium", sponsorship.Urgency)
	assert.Equal(t, 0, sponsorship.ViewCount)
	assert.Empty(t, sponsorship.InterestedBusinesses)
}

func TestCreateSponsorshipValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	uc := newSponsorshipUseCase(env)

	cases := []struct {
		name  string
		input CreateSponsorshipInput
	}{
		{"missing title", CreateSponsorshipInput{Description: "d", Category: "equipment", Amount: 100}},
		{"zero amount", CreateSponsorshipInput{Title: "t", Description: "d", Category: "equipment", Amount: 0}},
		{"negative amount", CreateSponsorshipInput{Title: "t", Description: "d", Category: "equipment", Amount: -50}},
		{"unknown category", CreateSponsorshipInput{Title: "t", Description: "d", Category: "yachts", Amount: 100}},
		{"unknown urgency", CreateSponsorshipInput{Title: "t", Description: "d", Category: "equipment", Amount: 100, Urgency: "extreme"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "club-1", tc.input)
			assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "expected validation error, got %v", err)
		})
	}
}

func TestCreateSponsorshipRequiresClubRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	uc := newSponsorshipUseCase(env)

	_, err := uc.Create(context.Background(), "biz-1", CreateSponsorshipInput{
		Title:       "Not a club",
		Description: "Businesses cannot post funding requests.",
		Category:    "general",
		Amount:      100,
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestGetByIDCountsViews(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newSponsorshipUseCase(env)

	// Owner views never count.
	got, err := uc.GetByID(context.Background(), sponsorship.ID, "club-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ViewCount)

	// Anonymous views never count.
	got, err = uc.GetByID(context.Background(), sponsorship.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ViewCount)

	// Signed-in non-owner views count, including repeats.
	for i := 1; i <= 3; i++ {
		got, err = uc.GetByID(context.Background(), sponsorship.ID, "biz-1")
		require.NoError(t, err)
		assert.Equal(t, i, got.ViewCount)
	}
}

func TestToggleInterestIsAnInvolution(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newSponsorshipUseCase(env)

	got, err := uc.ToggleInterest(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"biz-1"}, got.InterestedBusinesses)

	got, err = uc.ToggleInterest(context.Background(), sponsorship.ID, "biz-1")
	require.NoError(t, err)
	assert.Empty(t, got.InterestedBusinesses)
}

func TestToggleInterestRejectsClubs(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "club-2", "Hillside FC", entity.RoleClub)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newSponsorshipUseCase(env)

	_, err := uc.ToggleInterest(context.Background(), sponsorship.ID, "club-2")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestFundTransitionsActiveToFunded(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newSponsorshipUseCase(env)

	funded, err := uc.Fund(context.Background(), sponsorship.ID, "biz-1", "pi_123")
	require.NoError(t, err)
	assert.Equal(t, entity.SponsorshipStatusFunded, funded.Status)
	assert.Equal(t, "biz-1", funded.FundedBy)
	require.NotNil(t, funded.FundedAt)
}

func TestFundRejectsNonActiveStates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	uc := newSponsorshipUseCase(env)

	for _, status := range []string{
		entity.SponsorshipStatusFunded,
		entity.SponsorshipStatusPaused,
		entity.SponsorshipStatusExpired,
	} {
		sponsorship := env.seedSponsorship(t, "club-1", 500)
		sponsorship.Status = status
		require.NoError(t, env.sponsorshipRepo.Update(context.Background(), sponsorship))

		_, err := uc.Fund(context.Background(), sponsorship.ID, "biz-1", "pi_123")
		assert.True(t, errors.Is(err, "NOT_AVAILABLE"), "funding from %s should be rejected", status)
	}
}

func TestSetStatusOwnerAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "admin-1", "Admin", entity.RoleAdmin)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newSponsorshipUseCase(env)

	got, err := uc.SetStatus(context.Background(), sponsorship.ID, entity.SponsorshipStatusPaused, "club-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SponsorshipStatusPaused, got.Status)

	// Admins may force any transition, including out of funded.
	got, err = uc.SetStatus(context.Background(), sponsorship.ID, entity.SponsorshipStatusFunded, "admin-1")
	require.NoError(t, err)
	got, err = uc.SetStatus(context.Background(), sponsorship.ID, entity.SponsorshipStatusActive, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SponsorshipStatusActive, got.Status)

	_, err = uc.SetStatus(context.Background(), sponsorship.ID, entity.SponsorshipStatusPaused, "biz-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.SetStatus(context.Background(), sponsorship.ID, "archived", "club-1")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestDeleteSponsorship(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	env.seedUser(t, "biz-1", "Acme Ltd", entity.RoleBusiness)
	sponsorship := env.seedSponsorship(t, "club-1", 500)
	uc := newSponsorshipUseCase(env)

	err := uc.Delete(context.Background(), sponsorship.ID, "biz-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.Delete(context.Background(), sponsorship.ID, "club-1"))

	_, err = uc.GetByID(context.Background(), sponsorship.ID, "")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "club-1", "Riverside FC", entity.RoleClub)
	uc := newSponsorshipUseCase(env)

	active := env.seedSponsorship(t, "club-1", 100)
	paused := env.seedSponsorship(t, "club-1", 200)
	paused.Status = entity.SponsorshipStatusPaused
	require.NoError(t, env.sponsorshipRepo.Update(context.Background(), paused))

	got, total, err := uc.List(context.Background(), map[string]interface{}{"status": "active"}, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}
