package usecase

import (
	"context"
	"time"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/pkg/errors"
	"sponsorconnect/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	auth     AuthProvider
}

func NewAuthUseCase(userRepo repository.UserRepository, auth AuthProvider) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		auth:     auth,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Role        string // club or business; admins are promoted, not registered
	Phone       string
	Postcode    string
	Location    string
	Description string
	BudgetRange string
}

type AuthResult struct {
	User         *entity.User
	Token        string
	RefreshToken string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role != entity.RoleClub && input.Role != entity.RoleBusiness {
		return nil, errors.Validation("Role must be club or business", nil)
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.EmailInUse(nil)
	}

	uid, err := uc.auth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:          uid,
		Email:       input.Email,
		Name:        input.Name,
		Role:        input.Role,
		Status:      "active",
		Phone:       input.Phone,
		Postcode:    input.Postcode,
		Location:    input.Location,
		Description: input.Description,
		BudgetRange: input.BudgetRange,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// The identity record exists without a profile now; surface the
		// failure rather than retry.
		logger.Error("Profile creation failed after identity creation for %s: %v", uid, err)
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, refreshToken, err := uc.auth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:         user,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, refreshToken, err := uc.auth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, err
	}

	uid, err := uc.auth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.UserNotFound(err)
	}

	if user.Status != "active" {
		return nil, errors.Forbidden("Account is deactivated", nil)
	}

	return &AuthResult{
		User:         user,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	newToken, err := uc.auth.RefreshIDToken(ctx, refreshToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid refresh token", err)
	}

	return newToken, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	// Sessions are bearer tokens; logout is client-side discard.
	return nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}
