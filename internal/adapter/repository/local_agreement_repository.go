package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/pkg/errors"
)

const agreementsCollection = "agreements"

type localAgreementRepository struct {
	store *localstore.Store
}

func NewLocalAgreementRepository(store *localstore.Store) repository.AgreementRepository {
	return &localAgreementRepository{store: store}
}

func (r *localAgreementRepository) Create(ctx context.Context, agreement *entity.Agreement) error {
	if agreement.ID == "" {
		agreement.ID = uuid.New().String()
	}

	now := time.Now()
	agreement.CreatedAt = now
	agreement.UpdatedAt = now

	if err := r.store.Set(agreementsCollection, agreement.ID, agreement); err != nil {
		return errors.Internal("Failed to create agreement", err)
	}
	return nil
}

func (r *localAgreementRepository) GetByID(ctx context.Context, id string) (*entity.Agreement, error) {
	var agreement entity.Agreement
	if err := r.store.Get(agreementsCollection, id, &agreement); err != nil {
		if err == localstore.ErrNotFound {
			return nil, errors.NotFound("Agreement", err)
		}
		return nil, errors.Internal("Failed to get agreement", err)
	}
	return &agreement, nil
}

func (r *localAgreementRepository) GetByPaymentReference(ctx context.Context, paymentRef string) (*entity.Agreement, error) {
	var found *entity.Agreement
	err := r.store.All(agreementsCollection, func(id string, raw json.RawMessage) error {
		var agreement entity.Agreement
		if err := json.Unmarshal(raw, &agreement); err == nil && agreement.PaymentReference == paymentRef {
			found = &agreement
		}
		return nil
	})
	if err != nil {
		return nil, errors.Internal("Failed to query agreement by payment reference", err)
	}
	if found == nil {
		return nil, errors.NotFound("Agreement", nil)
	}
	return found, nil
}

func (r *localAgreementRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Agreement, int64, error) {
	var agreements []*entity.Agreement
	err := r.store.All(agreementsCollection, func(id string, raw json.RawMessage) error {
		var agreement entity.Agreement
		if err := json.Unmarshal(raw, &agreement); err != nil {
			return nil
		}
		fields := map[string]interface{}{
			"status":     agreement.Status,
			"clubId":     agreement.ClubID,
			"businessId": agreement.BusinessID,
		}
		if matchesFilter(fields, filter) {
			agreements = append(agreements, &agreement)
		}
		return nil
	})
	if err != nil {
		return nil, 0, errors.Internal("Failed to list agreements", err)
	}

	sort.Slice(agreements, func(i, j int) bool {
		return agreements[i].CreatedAt.After(agreements[j].CreatedAt)
	})

	total := int64(len(agreements))
	start, end := paginate(len(agreements), limit, offset)
	return agreements[start:end], total, nil
}

func (r *localAgreementRepository) ListByBusinessID(ctx context.Context, businessID string, limit, offset int) ([]*entity.Agreement, int64, error) {
	return r.List(ctx, map[string]interface{}{"businessId": businessID}, limit, offset)
}

func (r *localAgreementRepository) ListByClubID(ctx context.Context, clubID string, limit, offset int) ([]*entity.Agreement, int64, error) {
	return r.List(ctx, map[string]interface{}{"clubId": clubID}, limit, offset)
}

func (r *localAgreementRepository) Update(ctx context.Context, agreement *entity.Agreement) error {
	agreement.UpdatedAt = time.Now()
	if err := r.store.Set(agreementsCollection, agreement.ID, agreement); err != nil {
		return errors.Internal("Failed to update agreement", err)
	}
	return nil
}
