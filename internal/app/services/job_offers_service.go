package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// JobOffersService manages offers recruiters extend to students.
type JobOffersService struct {
	offerRepo     *repositories.JobOfferRepository
	recruiterRepo *repositories.RecruiterProfileRepository
	notifications *NotificationService
	delay         time.Duration
	logger        zerolog.Logger
}

// NewJobOffersService creates a new JobOffersService
func NewJobOffersService(
	repos *repositories.Repositories,
	notifications *NotificationService,
	delay time.Duration,
	logger zerolog.Logger,
) *JobOffersService {
	return &JobOffersService{
		offerRepo:     repos.JobOfferRepository,
		recruiterRepo: repos.RecruiterProfileRepository,
		notifications: notifications,
		delay:         delay,
		logger:        logger,
	}
}

// CreateJobOffer creates a pending offer, snapshotting the recruiter's company
// name onto it, and notifies the target student.
func (s *JobOffersService) CreateJobOffer(ctx context.Context, recruiterID string, req *dto.CreateJobOfferRequest) (*models.JobOffer, error) {
	if !req.Type.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown offer type %q", req.Type))
	}
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}

	// Company name is frozen at creation time so later profile edits do not
	// rewrite history on existing offers.
	companyName := "Unknown Company"
	if profile, err := s.recruiterRepo.GetByUserID(ctx, recruiterID); err == nil && profile.CompanyName != "" {
		companyName = profile.CompanyName
	}

	now := time.Now()
	offer := &models.JobOffer{
		ID:          uuid.New().String(),
		RecruiterID: recruiterID,
		StudentID:   req.StudentID,
		Position:    req.Position,
		Description: req.Description,
		Salary:      req.Salary,
		Location:    req.Location,
		Type:        req.Type,
		Status:      models.OfferStatusPending,
		CompanyName: companyName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("offer creation error: %w", err)
	}

	s.notifications.NotifyJobOffer(ctx, offer, OfferCreated)
	return offer, nil
}

// GetStudentOffers returns the offers targeting a student, newest first.
func (s *JobOffersService) GetStudentOffers(ctx context.Context, studentID string) ([]models.JobOffer, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.offerRepo.ListByStudent(ctx, studentID)
}

// GetRecruiterOffers returns the offers a recruiter created, newest first.
func (s *JobOffersService) GetRecruiterOffers(ctx context.Context, recruiterID string) ([]models.JobOffer, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.offerRepo.ListByRecruiter(ctx, recruiterID)
}

// GetOfferByID returns a single offer.
func (s *JobOffersService) GetOfferByID(ctx context.Context, offerID string) (*models.JobOffer, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.offerRepo.GetByID(ctx, offerID)
}

// UpdateOfferStatus records the student's decision on a pending offer. Only
// the status and UpdatedAt change; accepted and declined are terminal states.
// The recruiter is notified of the decision.
func (s *JobOffersService) UpdateOfferStatus(ctx context.Context, offerID string, status models.OfferStatus) (*models.JobOffer, error) {
	if status != models.OfferStatusAccepted && status != models.OfferStatusDeclined {
		return nil, apperrors.ErrInvalidOfferState
	}
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}

	current, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.OfferStatusPending {
		return nil, apperrors.ErrOfferNotPending
	}

	offer, err := s.offerRepo.Apply(ctx, offerID, func(o *models.JobOffer) {
		o.Status = status
		o.UpdatedAt = time.Now()
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case models.OfferStatusAccepted:
		s.notifications.NotifyJobOffer(ctx, offer, OfferAccepted)
	case models.OfferStatusDeclined:
		s.notifications.NotifyJobOffer(ctx, offer, OfferDeclined)
	}

	return offer, nil
}

// DeleteOffer removes an offer. Returns apperrors.ErrOfferNotFound when it did
// not exist.
func (s *JobOffersService) DeleteOffer(ctx context.Context, offerID string) error {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return err
	}

	removed, err := s.offerRepo.Delete(ctx, offerID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrOfferNotFound
	}
	return nil
}
