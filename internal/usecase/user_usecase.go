package usecase

import (
	"context"
	"io"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	storage  FileStorage
}

func NewUserUseCase(userRepo repository.UserRepository, storage FileStorage) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		storage:  storage,
	}
}

type UpdateProfileInput struct {
	Name        string
	Phone       string
	Postcode    string
	Location    string
	Description string
	BudgetRange string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	user.Name = input.Name
	user.Phone = input.Phone
	user.Postcode = input.Postcode
	user.Location = input.Location
	user.Description = input.Description
	user.BudgetRange = input.BudgetRange
	user.ProfileCompleted = true

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UploadLogo stores a club or business logo and records its public URL on the
// profile. The previous logo, if any, is removed best-effort.
func (uc *UserUseCase) UploadLogo(ctx context.Context, userID string, file io.Reader, fileType string) (*entity.User, error) {
	if uc.storage == nil {
		return nil, errors.BadRequest("File storage is not configured", nil)
	}

	switch fileType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
	default:
		return nil, errors.Validation("Only JPEG, PNG, GIF, and WebP images are allowed", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	url, err := uc.storage.UploadFile(ctx, file, fileType, "logos")
	if err != nil {
		return nil, errors.Internal("Failed to upload logo", err)
	}

	if user.LogoURL != "" {
		uc.storage.DeleteFile(ctx, user.LogoURL)
	}

	user.LogoURL = url
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
