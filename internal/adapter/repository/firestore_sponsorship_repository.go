package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/pkg/errors"
)

type firestoreSponsorshipRepository struct {
	client *firestore.Client
}

func NewFirestoreSponsorshipRepository(client *firestore.Client) repository.SponsorshipRepository {
	return &firestoreSponsorshipRepository{
		client: client,
	}
}

func (r *firestoreSponsorshipRepository) Create(ctx context.Context, sponsorship *entity.Sponsorship) error {
	if sponsorship.ID == "" {
		doc := r.client.Collection("sponsorships").NewDoc()
		sponsorship.ID = doc.ID
	}

	now := time.Now()
	if sponsorship.CreatedAt.IsZero() {
		sponsorship.CreatedAt = now
	}
	sponsorship.UpdatedAt = now

	if sponsorship.InterestedBusinesses == nil {
		sponsorship.InterestedBusinesses = []string{}
	}

	_, err := r.client.Collection("sponsorships").Doc(sponsorship.ID).Set(ctx, sponsorship)
	if err != nil {
		return errors.Internal("Failed to create sponsorship", err)
	}

	return nil
}

func (r *firestoreSponsorshipRepository) GetByID(ctx context.Context, id string) (*entity.Sponsorship, error) {
	doc, err := r.client.Collection("sponsorships").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Sponsorship", err)
		}
		return nil, errors.Internal("Failed to get sponsorship", err)
	}

	var sponsorship entity.Sponsorship
	if err := doc.DataTo(&sponsorship); err != nil {
		return nil, errors.Internal("Failed to parse sponsorship data", err)
	}

	return &sponsorship, nil
}

func (r *firestoreSponsorshipRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Sponsorship, int64, error) {
	query := r.client.Collection("sponsorships").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	if sort != "" {
		parts := strings.Split(sort, "_")
		field := parts[0]
		order := firestore.Asc
		if len(parts) > 1 && parts[1] == "desc" {
			order = firestore.Desc
		}
		query = query.OrderBy(field, order)
	} else {
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	// Firestore has no cheap count; fetch all matches for the total like the
	// rest of the listing endpoints.
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count sponsorships", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var sponsorships []*entity.Sponsorship

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate sponsorships", err)
		}
		var sponsorship entity.Sponsorship
		if err := doc.DataTo(&sponsorship); err != nil {
			return nil, 0, errors.Internal("Failed to parse sponsorship data", err)
		}
		sponsorships = append(sponsorships, &sponsorship)
	}

	return sponsorships, total, nil
}

func (r *firestoreSponsorshipRepository) ListByClubID(ctx context.Context, clubID string, status string, limit, offset int) ([]*entity.Sponsorship, int64, error) {
	query := r.client.Collection("sponsorships").Query.Where("clubId", "==", clubID)

	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count club sponsorships", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var sponsorships []*entity.Sponsorship

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate club sponsorships", err)
		}

		var sponsorship entity.Sponsorship
		if err := doc.DataTo(&sponsorship); err != nil {
			return nil, 0, errors.Internal("Failed to parse sponsorship data", err)
		}
		sponsorships = append(sponsorships, &sponsorship)
	}

	return sponsorships, total, nil
}

func (r *firestoreSponsorshipRepository) Update(ctx context.Context, sponsorship *entity.Sponsorship) error {
	sponsorship.UpdatedAt = time.Now()

	_, err := r.client.Collection("sponsorships").Doc(sponsorship.ID).Set(ctx, sponsorship)
	if err != nil {
		return errors.Internal("Failed to update sponsorship", err)
	}

	return nil
}

func (r *firestoreSponsorshipRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("sponsorships").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete sponsorship", err)
	}

	return nil
}

func (r *firestoreSponsorshipRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("sponsorships").Doc(id).Update(ctx, []firestore.Update{
		{Path: "viewCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment sponsorship views", err)
	}

	return nil
}

func (r *firestoreSponsorshipRepository) AddInterest(ctx context.Context, id, businessID string) error {
	_, err := r.client.Collection("sponsorships").Doc(id).Update(ctx, []firestore.Update{
		{Path: "interestedBusinesses", Value: firestore.ArrayUnion(businessID)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to add interest", err)
	}

	return nil
}

func (r *firestoreSponsorshipRepository) RemoveInterest(ctx context.Context, id, businessID string) error {
	_, err := r.client.Collection("sponsorships").Doc(id).Update(ctx, []firestore.Update{
		{Path: "interestedBusinesses", Value: firestore.ArrayRemove(businessID)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to remove interest", err)
	}

	return nil
}
