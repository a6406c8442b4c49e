package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// JobOfferRepository persists job offers.
type JobOfferRepository struct {
	offers *collection[models.JobOffer]
}

// NewJobOfferRepository creates a new JobOfferRepository
func NewJobOfferRepository(store kvstore.Store) *JobOfferRepository {
	return &JobOfferRepository{
		offers: newCollection(store, KeyJobOffers, func(o *models.JobOffer) string { return o.ID }),
	}
}

// GetByID returns the offer with the given id.
func (r *JobOfferRepository) GetByID(ctx context.Context, id string) (*models.JobOffer, error) {
	offer, err := r.offers.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrOfferNotFound
	}
	return offer, err
}

// Create stores a new job offer.
func (r *JobOfferRepository) Create(ctx context.Context, offer *models.JobOffer) error {
	return r.offers.Add(ctx, offer)
}

// ListByStudent returns the offers targeting a student, newest first.
func (r *JobOfferRepository) ListByStudent(ctx context.Context, studentID string) ([]models.JobOffer, error) {
	offers, err := r.offers.Query(ctx, func(o *models.JobOffer) bool { return o.StudentID == studentID })
	if err != nil {
		return nil, err
	}
	sortNewestFirst(offers)
	return offers, nil
}

// ListByRecruiter returns the offers created by a recruiter, newest first.
func (r *JobOfferRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.JobOffer, error) {
	offers, err := r.offers.Query(ctx, func(o *models.JobOffer) bool { return o.RecruiterID == recruiterID })
	if err != nil {
		return nil, err
	}
	sortNewestFirst(offers)
	return offers, nil
}

// Apply merges changes onto the stored offer via apply.
func (r *JobOfferRepository) Apply(ctx context.Context, id string, apply func(*models.JobOffer)) (*models.JobOffer, error) {
	offer, err := r.offers.Update(ctx, id, apply)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrOfferNotFound
	}
	return offer, err
}

// Delete removes the offer with the given id. Returns false when it did not exist.
func (r *JobOfferRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.offers.Delete(ctx, id)
}

func sortNewestFirst(offers []models.JobOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
}
