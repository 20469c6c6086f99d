package repository

import (
	"context"

	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/store"
)

// StoreUserRepository is a record store implementation of UserRepository
type StoreUserRepository struct {
	users *store.Collection[models.User]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s *store.Store) UserRepository {
	return &StoreUserRepository{users: s.Users}
}

// Create appends a new user
func (r *StoreUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.users.Append(ctx, *user)
}

// FindByID finds a user by ID
func (r *StoreUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, found, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &user, nil
}

// FindByEmail finds a user by email. Emails compare case-sensitively.
func (r *StoreUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, found, err := r.users.Find(ctx, func(u models.User) bool {
		return u.Email == email
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &user, nil
}
