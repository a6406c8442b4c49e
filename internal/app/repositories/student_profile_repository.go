package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// StudentFilters narrows results of a student profile search. Zero values
// match everything.
type StudentFilters struct {
	Search     string
	Department string
	WorkStatus models.WorkStatus
}

// StudentProfileRepository persists student profiles.
type StudentProfileRepository struct {
	profiles *collection[models.StudentProfile]
}

// NewStudentProfileRepository creates a new StudentProfileRepository
func NewStudentProfileRepository(store kvstore.Store) *StudentProfileRepository {
	return &StudentProfileRepository{
		profiles: newCollection(store, KeyStudentProfiles, func(p *models.StudentProfile) string { return p.ID }),
	}
}

// GetByID returns the profile with the given id.
func (r *StudentProfileRepository) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	profile, err := r.profiles.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrStudentProfileNotFound
	}
	return profile, err
}

// GetByUserID returns the profile owned by the given user account.
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	matches, err := r.profiles.Query(ctx, func(p *models.StudentProfile) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.ErrStudentProfileNotFound
	}
	return &matches[0], nil
}

// Create stores a new student profile.
func (r *StudentProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	return r.profiles.Add(ctx, profile)
}

// Apply merges changes onto the stored profile via apply and stamps UpdatedAt.
func (r *StudentProfileRepository) Apply(ctx context.Context, id string, apply func(*models.StudentProfile)) (*models.StudentProfile, error) {
	profile, err := r.profiles.Update(ctx, id, func(p *models.StudentProfile) {
		apply(p)
		p.UpdatedAt = time.Now()
	})
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrStudentProfileNotFound
	}
	return profile, err
}

// Search returns all profiles matching the filters. Search text matches first
// name, last name or experience, case-insensitively.
func (r *StudentProfileRepository) Search(ctx context.Context, filters StudentFilters) ([]models.StudentProfile, error) {
	search := strings.ToLower(filters.Search)
	return r.profiles.Query(ctx, func(p *models.StudentProfile) bool {
		if search != "" {
			matched := strings.Contains(strings.ToLower(p.FirstName), search) ||
				strings.Contains(strings.ToLower(p.LastName), search) ||
				strings.Contains(strings.ToLower(p.Experience), search)
			if !matched {
				return false
			}
		}
		if filters.Department != "" && p.Department != filters.Department {
			return false
		}
		if filters.WorkStatus != "" && p.WorkStatus != filters.WorkStatus {
			return false
		}
		return true
	})
}
