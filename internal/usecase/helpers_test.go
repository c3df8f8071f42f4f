package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sponsorconnect/internal/adapter/repository"
	"sponsorconnect/internal/domain/entity"
	domainrepo "sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/infrastructure/localstore"
)

type testEnv struct {
	userRepo        domainrepo.UserRepository
	sponsorshipRepo domainrepo.SponsorshipRepository
	agreementRepo   domainrepo.AgreementRepository
	convRepo        domainrepo.ConversationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := localstore.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	return &testEnv{
		userRepo:        repository.NewLocalUserRepository(store),
		sponsorshipRepo: repository.NewLocalSponsorshipRepository(store),
		agreementRepo:   repository.NewLocalAgreementRepository(store),
		convRepo:        repository.NewLocalConversationRepository(store),
	}
}

func (env *testEnv) seedUser(t *testing.T, id, name, role string) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:     id,
		Email:  id + "@example.com",
		Name:   name,
		Role:   role,
		Status: "active",
	}
	require.NoError(t, env.userRepo.Create(context.Background(), user))
	return user
}

func (env *testEnv) seedSponsorship(t *testing.T, clubID string, amount float64) *entity.Sponsorship {
	t.Helper()

	sponsorship := &entity.Sponsorship{
		ClubID:      clubID,
		ClubName:    "Test Club",
		Title:       "New training equipment",
		Description: "Replacing worn out cones, bibs and goals for the junior squads.",
		Category:    "equipment",
		Amount:      amount,
		Urgency:     "medium",
		Status:      entity.SponsorshipStatusActive,
	}
	require.NoError(t, env.sponsorshipRepo.Create(context.Background(), sponsorship))
	return sponsorship
}
