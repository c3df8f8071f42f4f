package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sponsorconnect/internal/adapter/repository"
	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/infrastructure/localauth"
	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/pkg/errors"
)

func newAuthUseCaseForTest(t *testing.T) *AuthUseCase {
	t.Helper()

	store, err := localstore.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	userRepo := repository.NewLocalUserRepository(store)
	authClient := localauth.NewLocalAuthClient(store, "test-secret")
	return NewAuthUseCase(userRepo, authClient)
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuthUseCaseForTest(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email:    "club@example.com",
		Password: "correct-horse",
		Name:     "Riverside FC",
		Role:     entity.RoleClub,
		Postcode: "BS1 4DJ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, entity.RoleClub, result.User.Role)
	assert.Equal(t, "active", result.User.Status)

	login, err := uc.Login(ctx, "club@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	uc := newAuthUseCaseForTest(t)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
		Name:     "Sneaky Admin",
		Role:     entity.RoleAdmin,
	})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc := newAuthUseCaseForTest(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{
		Email:    "club@example.com",
		Password: "correct-horse",
		Name:     "Riverside FC",
		Role:     entity.RoleClub,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, RegisterInput{
		Email:    "club@example.com",
		Password: "other-password",
		Name:     "Impostor FC",
		Role:     entity.RoleClub,
	})
	assert.True(t, errors.Is(err, "EMAIL_IN_USE"))
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	uc := newAuthUseCaseForTest(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email:    "club@example.com",
		Password: "correct-horse",
		Name:     "Riverside FC",
		Role:     entity.RoleClub,
	})
	require.NoError(t, err)

	result.User.Status = "suspended"
	require.NoError(t, uc.userRepo.Update(ctx, result.User))

	_, err = uc.Login(ctx, "club@example.com", "correct-horse")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	uc := newAuthUseCaseForTest(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email:    "club@example.com",
		Password: "correct-horse",
		Name:     "Riverside FC",
		Role:     entity.RoleClub,
	})
	require.NoError(t, err)

	token, err := uc.RefreshToken(ctx, result.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = uc.RefreshToken(ctx, "garbage")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}
