package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/pkg/errors"
)

type firestoreAgreementRepository struct {
	client *firestore.Client
}

func NewFirestoreAgreementRepository(client *firestore.Client) repository.AgreementRepository {
	return &firestoreAgreementRepository{
		client: client,
	}
}

func (r *firestoreAgreementRepository) Create(ctx context.Context, agreement *entity.Agreement) error {
	if agreement.ID == "" {
		agreement.ID = uuid.New().String()
	}

	now := time.Now()
	agreement.CreatedAt = now
	agreement.UpdatedAt = now

	_, err := r.client.Collection("agreements").Doc(agreement.ID).Set(ctx, agreement)
	if err != nil {
		return errors.Internal("Failed to create agreement", err)
	}

	return nil
}

func (r *firestoreAgreementRepository) GetByID(ctx context.Context, id string) (*entity.Agreement, error) {
	doc, err := r.client.Collection("agreements").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Agreement", err)
		}
		return nil, errors.Internal("Failed to get agreement", err)
	}

	var agreement entity.Agreement
	if err := doc.DataTo(&agreement); err != nil {
		return nil, errors.Internal("Failed to parse agreement data", err)
	}

	return &agreement, nil
}

func (r *firestoreAgreementRepository) GetByPaymentReference(ctx context.Context, paymentRef string) (*entity.Agreement, error) {
	iter := r.client.Collection("agreements").Where("paymentReference", "==", paymentRef).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Agreement", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query agreement by payment reference", err)
	}

	var agreement entity.Agreement
	if err := doc.DataTo(&agreement); err != nil {
		return nil, errors.Internal("Failed to parse agreement data", err)
	}

	return &agreement, nil
}

func (r *firestoreAgreementRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Agreement, int64, error) {
	query := r.client.Collection("agreements").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count agreements", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var agreements []*entity.Agreement

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate agreements", err)
		}
		var agreement entity.Agreement
		if err := doc.DataTo(&agreement); err != nil {
			return nil, 0, errors.Internal("Failed to parse agreement data", err)
		}
		agreements = append(agreements, &agreement)
	}

	return agreements, total, nil
}

func (r *firestoreAgreementRepository) ListByBusinessID(ctx context.Context, businessID string, limit, offset int) ([]*entity.Agreement, int64, error) {
	return r.List(ctx, map[string]interface{}{"businessId": businessID}, limit, offset)
}

func (r *firestoreAgreementRepository) ListByClubID(ctx context.Context, clubID string, limit, offset int) ([]*entity.Agreement, int64, error) {
	return r.List(ctx, map[string]interface{}{"clubId": clubID}, limit, offset)
}

func (r *firestoreAgreementRepository) Update(ctx context.Context, agreement *entity.Agreement) error {
	agreement.UpdatedAt = time.Now()

	_, err := r.client.Collection("agreements").Doc(agreement.ID).Set(ctx, agreement)
	if err != nil {
		return errors.Internal("Failed to update agreement", err)
	}

	return nil
}
