package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// RecruiterProfileRepository persists recruiter profiles.
type RecruiterProfileRepository struct {
	profiles *collection[models.RecruiterProfile]
}

// NewRecruiterProfileRepository creates a new RecruiterProfileRepository
func NewRecruiterProfileRepository(store kvstore.Store) *RecruiterProfileRepository {
	return &RecruiterProfileRepository{
		profiles: newCollection(store, KeyRecruiterProfiles, func(p *models.RecruiterProfile) string { return p.ID }),
	}
}

// GetByID returns the profile with the given id.
func (r *RecruiterProfileRepository) GetByID(ctx context.Context, id string) (*models.RecruiterProfile, error) {
	profile, err := r.profiles.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrRecruiterProfileNotFound
	}
	return profile, err
}

// GetByUserID returns the profile owned by the given user account.
func (r *RecruiterProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.RecruiterProfile, error) {
	matches, err := r.profiles.Query(ctx, func(p *models.RecruiterProfile) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.ErrRecruiterProfileNotFound
	}
	return &matches[0], nil
}

// Create stores a new recruiter profile.
func (r *RecruiterProfileRepository) Create(ctx context.Context, profile *models.RecruiterProfile) error {
	return r.profiles.Add(ctx, profile)
}

// Apply merges changes onto the stored profile via apply and stamps UpdatedAt.
func (r *RecruiterProfileRepository) Apply(ctx context.Context, id string, apply func(*models.RecruiterProfile)) (*models.RecruiterProfile, error) {
	profile, err := r.profiles.Update(ctx, id, func(p *models.RecruiterProfile) {
		apply(p)
		p.UpdatedAt = time.Now()
	})
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrRecruiterProfileNotFound
	}
	return profile, err
}
