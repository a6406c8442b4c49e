package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// UserRepository persists user accounts and their credentials.
type UserRepository struct {
	users       *collection[models.User]
	credentials *collection[models.Credential]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store kvstore.Store) *UserRepository {
	return &UserRepository{
		users:       newCollection(store, KeyUsers, func(u *models.User) string { return u.ID }),
		credentials: newCollection(store, KeyCredentials, func(c *models.Credential) string { return c.ID }),
	}
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.users.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	return user, err
}

// List returns all user accounts.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.users.List(ctx)
}

// GetByEmail returns the user with the given email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	matches, err := r.users.Query(ctx, func(u *models.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return &matches[0], nil
}

// EmailExists reports whether a user with the given email already exists.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	matches, err := r.users.Query(ctx, func(u *models.User) bool { return u.Email == email })
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// Create stores a new user together with its password hash.
func (r *UserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	if err := r.users.Add(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	cred := &models.Credential{ID: user.ID, PasswordHash: passwordHash}
	if err := r.credentials.Add(ctx, cred); err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

// GetCredential returns the stored password hash for a user id.
func (r *UserRepository) GetCredential(ctx context.Context, userID string) (*models.Credential, error) {
	cred, err := r.credentials.GetByID(ctx, userID)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	return cred, err
}

// SetVerified marks the user's email address as verified.
func (r *UserRepository) SetVerified(ctx context.Context, userID string) (*models.User, error) {
	user, err := r.users.Update(ctx, userID, func(u *models.User) { u.Verified = true })
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	return user, err
}
