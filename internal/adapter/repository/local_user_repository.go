package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"sponsorconnect/internal/domain/entity"
	"sponsorconnect/internal/domain/repository"
	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/pkg/errors"
)

const usersCollection = "users"

type localUserRepository struct {
	store *localstore.Store
}

func NewLocalUserRepository(store *localstore.Store) repository.UserRepository {
	return &localUserRepository{store: store}
}

func (r *localUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if err := r.store.Set(usersCollection, user.ID, user); err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *localUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.store.Get(usersCollection, id, &user); err != nil {
		if err == localstore.ErrNotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}
	return &user, nil
}

func (r *localUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := r.store.All(usersCollection, func(id string, raw json.RawMessage) error {
		var user entity.User
		if err := json.Unmarshal(raw, &user); err == nil && user.Email == email {
			found = &user
		}
		return nil
	})
	if err != nil {
		return nil, errors.Internal("Failed to query user by email", err)
	}
	if found == nil {
		return nil, errors.NotFound("User", nil)
	}
	return found, nil
}

func (r *localUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	if err := r.store.Set(usersCollection, user.ID, user); err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *localUserRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(usersCollection, id); err != nil {
		return errors.Internal("Failed to delete user", err)
	}
	return nil
}

func (r *localUserRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error) {
	var users []*entity.User
	err := r.store.All(usersCollection, func(id string, raw json.RawMessage) error {
		var user entity.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil
		}
		fields := map[string]interface{}{
			"role":   user.Role,
			"status": user.Status,
		}
		if matchesFilter(fields, filter) {
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, 0, errors.Internal("Failed to list users", err)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	total := int64(len(users))
	start, end := paginate(len(users), limit, offset)
	return users[start:end], total, nil
}
