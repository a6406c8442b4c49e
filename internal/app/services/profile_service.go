package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/models/dto"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// ProfileService manages student and recruiter profiles in the local store.
// Profile updates have no remote fallback: a failure here is terminal for the
// call and the user retries.
type ProfileService struct {
	studentRepo   *repositories.StudentProfileRepository
	recruiterRepo *repositories.RecruiterProfileRepository
	delay         time.Duration
	logger        zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repos *repositories.Repositories, delay time.Duration, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		studentRepo:   repos.StudentProfileRepository,
		recruiterRepo: repos.RecruiterProfileRepository,
		delay:         delay,
		logger:        logger,
	}
}

// UpdateStudentProfile merges the non-nil fields of the partial payload onto
// the stored profile and stamps UpdatedAt.
func (s *ProfileService) UpdateStudentProfile(ctx context.Context, update *dto.StudentProfileUpdate) (*models.StudentProfile, error) {
	if update.ID == "" {
		return nil, apperrors.NewValidationError("profile id is required")
	}
	if update.WorkStatus != nil && !update.WorkStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown work status")
	}
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}

	return s.studentRepo.Apply(ctx, update.ID, func(p *models.StudentProfile) {
		if update.FirstName != nil {
			p.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			p.LastName = *update.LastName
		}
		if update.Age != nil {
			p.Age = *update.Age
		}
		if update.Department != nil {
			p.Department = *update.Department
		}
		if update.Year != nil {
			p.Year = *update.Year
		}
		if update.Semester != nil {
			p.Semester = *update.Semester
		}
		if update.PhoneNumber != nil {
			p.PhoneNumber = *update.PhoneNumber
		}
		if update.CommunicationEmail != nil {
			p.CommunicationEmail = update.CommunicationEmail
		}
		if update.ProfilePicture != nil {
			p.ProfilePicture = update.ProfilePicture
		}
		if update.Resume != nil {
			p.Resume = update.Resume
		}
		if update.Certificates != nil {
			p.Certificates = update.Certificates
		}
		if update.Experience != nil {
			p.Experience = *update.Experience
		}
		if update.WorkStatus != nil {
			p.WorkStatus = *update.WorkStatus
		}
	})
}

// UpdateRecruiterProfile merges the non-nil fields of the partial payload onto
// the stored profile and stamps UpdatedAt.
func (s *ProfileService) UpdateRecruiterProfile(ctx context.Context, update *dto.RecruiterProfileUpdate) (*models.RecruiterProfile, error) {
	if update.ID == "" {
		return nil, apperrors.NewValidationError("profile id is required")
	}
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}

	return s.recruiterRepo.Apply(ctx, update.ID, func(p *models.RecruiterProfile) {
		if update.CompanyName != nil {
			p.CompanyName = *update.CompanyName
		}
		if update.Industry != nil {
			p.Industry = *update.Industry
		}
		if update.Website != nil {
			p.Website = *update.Website
		}
		if update.LogoURL != nil {
			p.LogoURL = update.LogoURL
		}
		if update.Description != nil {
			p.Description = update.Description
		}
	})
}

// GetAllStudents returns student profiles matching the filters.
func (s *ProfileService) GetAllStudents(ctx context.Context, filters repositories.StudentFilters) ([]models.StudentProfile, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.studentRepo.Search(ctx, filters)
}

// GetStudentByID returns a single student profile.
func (s *ProfileService) GetStudentByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// GetRecruiterByID returns a single recruiter profile.
func (s *ProfileService) GetRecruiterByID(ctx context.Context, id string) (*models.RecruiterProfile, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.recruiterRepo.GetByID(ctx, id)
}
