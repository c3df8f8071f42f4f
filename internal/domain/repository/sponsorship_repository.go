package repository

import (
	"context"

	"sponsorconnect/internal/domain/entity"
)

type SponsorshipRepository interface {
	Create(ctx context.Context, sponsorship *entity.Sponsorship) error
	GetByID(ctx context.Context, id string) (*entity.Sponsorship, error)
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Sponsorship, int64, error)
	ListByClubID(ctx context.Context, clubID string, status string, limit, offset int) ([]*entity.Sponsorship, int64, error)
	Update(ctx context.Context, sponsorship *entity.Sponsorship) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	AddInterest(ctx context.Context, id, businessID string) error
	RemoveInterest(ctx context.Context, id, businessID string) error
}
