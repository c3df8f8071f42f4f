package repository

import (
	"context"

	"sponsorconnect/internal/domain/entity"
)

type AgreementRepository interface {
	Create(ctx context.Context, agreement *entity.Agreement) error
	GetByID(ctx context.Context, id string) (*entity.Agreement, error)
	GetByPaymentReference(ctx context.Context, paymentRef string) (*entity.Agreement, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Agreement, int64, error)
	ListByBusinessID(ctx context.Context, businessID string, limit, offset int) ([]*entity.Agreement, int64, error)
	ListByClubID(ctx context.Context, clubID string, limit, offset int) ([]*entity.Agreement, int64, error)
	Update(ctx context.Context, agreement *entity.Agreement) error
}
