package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/repositories"
)

// OfferAction describes what happened to a job offer for notification purposes
type OfferAction string

const (
	OfferCreated  OfferAction = "created"
	OfferAccepted OfferAction = "accepted"
	OfferDeclined OfferAction = "declined"
)

// NotificationService persists per-user notifications and composes the
// job-offer notification messages.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repos *repositories.Repositories, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: repos.NotificationRepository,
		userRepo:         repos.UserRepository,
		logger:           logger,
	}
}

// Create stores a notification for a user.
func (s *NotificationService) Create(ctx context.Context, userID, title, message string, typ models.NotificationType, relatedTo *models.NotificationRelation) (*models.Notification, error) {
	notification := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		RelatedTo: relatedTo,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListForUser returns a user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// GetByID returns a single notification.
func (s *NotificationService) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	return s.notificationRepo.GetByID(ctx, id)
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks all of a user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, id string) (bool, error) {
	return s.notificationRepo.Delete(ctx, id)
}

// NotifyJobOffer records the notification a job offer action produces: the
// student hears about new offers, the recruiter hears about decisions. Missing
// accounts make this a no-op; notification failures never fail the offer
// operation that triggered them.
func (s *NotificationService) NotifyJobOffer(ctx context.Context, offer *models.JobOffer, action OfferAction) {
	student, err := s.userRepo.GetByID(ctx, offer.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("offerId", offer.ID).Msg("Skipping offer notification, student account missing")
		return
	}
	recruiter, err := s.userRepo.GetByID(ctx, offer.RecruiterID)
	if err != nil {
		s.logger.Warn().Err(err).Str("offerId", offer.ID).Msg("Skipping offer notification, recruiter account missing")
		return
	}

	related := &models.NotificationRelation{Type: models.RelatedJobOffer, ID: offer.ID}

	var createErr error
	switch action {
	case OfferCreated:
		company := offer.CompanyName
		if company == "" {
			company = "a company"
		}
		message := fmt.Sprintf("%s %s from %s has sent you a job offer for %s",
			recruiter.FirstName, recruiter.LastName, company, offer.Position)
		_, createErr = s.Create(ctx, student.ID, "New Job Offer", message, models.NotificationInfo, related)

	case OfferAccepted:
		message := fmt.Sprintf("%s %s has accepted your job offer for %s",
			student.FirstName, student.LastName, offer.Position)
		_, createErr = s.Create(ctx, recruiter.ID, "Job Offer Accepted", message, models.NotificationSuccess, related)

	case OfferDeclined:
		message := fmt.Sprintf("%s %s has declined your job offer for %s",
			student.FirstName, student.LastName, offer.Position)
		_, createErr = s.Create(ctx, recruiter.ID, "Job Offer Declined", message, models.NotificationWarning, related)
	}

	if createErr != nil {
		s.logger.Warn().Err(createErr).Str("offerId", offer.ID).Msg("Failed to record offer notification")
	}
}
