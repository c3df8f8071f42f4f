package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/pkg/errors"
)

const sponsorshipsCollection = "sponsorships"

type localSponsorshipRepository struct {
	store *localstore.Store
}

func NewLocalSponsorshipRepository(store *localstore.Store) repository.SponsorshipRepository {
	return &localSponsorshipRepository{store: store}
}

func (r *localSponsorshipRepository) Create(ctx context.Context, sponsorship *entity.Sponsorship) error {
	if sponsorship.ID == "" {
		sponsorship.ID = uuid.New().String()
	}

	now := time.Now()
	if sponsorship.CreatedAt.IsZero() {
		sponsorship.CreatedAt = now
	}
	sponsorship.UpdatedAt = now

	if sponsorship.InterestedBusinesses == nil {
		sponsorship.InterestedBusinesses = []string{}
	}

	if err := r.store.Set(sponsorshipsCollection, sponsorship.ID, sponsorship); err != nil {
		return errors.Internal("Failed to create sponsorship", err)
	}
	return nil
}

func (r *localSponsorshipRepository) GetByID(ctx context.Context, id string) (*entity.Sponsorship, error) {
	var sponsorship entity.Sponsorship
	if err := r.store.Get(sponsorshipsCollection, id, &sponsorship); err != nil {
		if err == localstore.ErrNotFound {
			return nil, errors.NotFound("Sponsorship", err)
		}
		return nil, errors.Internal("Failed to get sponsorship", err)
	}
	return &sponsorship, nil
}

func (r *localSponsorshipRepository) List(ctx context.Context, filter map[string]interface{}, sortKey string, limit, offset int) ([]*entity.Sponsorship, int64, error) {
	var sponsorships []*entity.Sponsorship
	err := r.store.All(sponsorshipsCollection, func(id string, raw json.RawMessage) error {
		var sponsorship entity.Sponsorship
		if err := json.Unmarshal(raw, &sponsorship); err != nil {
			return nil
		}
		fields := map[string]interface{}{
			"status":   sponsorship.Status,
			"category": sponsorship.Category,
			"urgency":  sponsorship.Urgency,
			"clubId":   sponsorship.ClubID,
		}
		if matchesFilter(fields, filter) {
			sponsorships = append(sponsorships, &sponsorship)
		}
		return nil
	})
	if err != nil {
		return nil, 0, errors.Internal("Failed to list sponsorships", err)
	}

	sortSponsorships(sponsorships, sortKey)

	total := int64(len(sponsorships))
	start, end := paginate(len(sponsorships), limit, offset)
	return sponsorships[start:end], total, nil
}

func (r *localSponsorshipRepository) ListByClubID(ctx context.Context, clubID string, status string, limit, offset int) ([]*entity.Sponsorship, int64, error) {
	filter := map[string]interface{}{"clubId": clubID}
	if status != "" {
		filter["status"] = status
	}
	return r.List(ctx, filter, "", limit, offset)
}

func (r *localSponsorshipRepository) Update(ctx context.Context, sponsorship *entity.Sponsorship) error {
	sponsorship.UpdatedAt = time.Now()
	if err := r.store.Set(sponsorshipsCollection, sponsorship.ID, sponsorship); err != nil {
		return errors.Internal("Failed to update sponsorship", err)
	}
	return nil
}

func (r *localSponsorshipRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(sponsorshipsCollection, id); err != nil {
		return errors.Internal("Failed to delete sponsorship", err)
	}
	return nil
}

func (r *localSponsorshipRepository) IncrementViews(ctx context.Context, id string) error {
	sponsorship, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	sponsorship.ViewCount++
	return r.Update(ctx, sponsorship)
}

func (r *localSponsorshipRepository) AddInterest(ctx context.Context, id, businessID string) error {
	sponsorship, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, b := range sponsorship.InterestedBusinesses {
		if b == businessID {
			return nil
		}
	}
	sponsorship.InterestedBusinesses = append(sponsorship.InterestedBusinesses, businessID)
	return r.Update(ctx, sponsorship)
}

func (r *localSponsorshipRepository) RemoveInterest(ctx context.Context, id, businessID string) error {
	sponsorship, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	kept := sponsorship.InterestedBusinesses[:0]
	for _, b := range sponsorship.InterestedBusinesses {
		if b != businessID {
			kept = append(kept, b)
		}
	}
	sponsorship.InterestedBusinesses = kept
	return r.Update(ctx, sponsorship)
}

func sortSponsorships(sponsorships []*entity.Sponsorship, sortKey string) {
	field := "createdAt"
	desc := true
	if sortKey != "" {
		parts := strings.Split(sortKey, "_")
		field = parts[0]
		desc = len(parts) > 1 && parts[1] == "desc"
	}

	sort.Slice(sponsorships, func(i, j int) bool {
		var less bool
		switch field {
		case "amount":
			less = sponsorships[i].Amount < sponsorships[j].Amount
		case "viewCount":
			less = sponsorships[i].ViewCount < sponsorships[j].ViewCount
		default:
			less = sponsorships[i].CreatedAt.Before(sponsorships[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}
