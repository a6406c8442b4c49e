package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/pkg/apperrors"
	"github.com/unihire/unihire/internal/pkg/auth"
	"github.com/unihire/unihire/internal/pkg/validation"
)

// AuthResult is what a successful login or registration yields: the account
// plus its role-specific profile.
type AuthResult struct {
	User             *models.User
	StudentProfile   *models.StudentProfile
	RecruiterProfile *models.RecruiterProfile
}

// AuthService handles authentication against the local store. It is the
// fallback identity path when the remote session provider is unreachable.
type AuthService struct {
	userRepo           *repositories.UserRepository
	studentRepo        *repositories.StudentProfileRepository
	recruiterRepo      *repositories.RecruiterProfileRepository
	jwtService         *auth.JWTService
	studentEmailDomain string
	delay              time.Duration
	logger             zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	studentEmailDomain string,
	delay time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:           repos.UserRepository,
		studentRepo:        repos.StudentProfileRepository,
		recruiterRepo:      repos.RecruiterProfileRepository,
		jwtService:         jwtService,
		studentEmailDomain: studentEmailDomain,
		delay:              delay,
		logger:             logger,
	}
}

// StudentEmailDomain returns the configured domain policy for student emails.
func (s *AuthService) StudentEmailDomain() string {
	return s.studentEmailDomain
}

// Login authenticates a user against the local store and loads the profile
// matching the account's role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	cred, err := s.userRepo.GetCredential(ctx, user.ID)
	if err != nil || !auth.CheckPassword(cred.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	result := &AuthResult{User: user}
	switch user.Role {
	case models.RoleStudent:
		// A missing profile is tolerated; the account is still usable
		if profile, err := s.studentRepo.GetByUserID(ctx, user.ID); err == nil {
			result.StudentProfile = profile
		}
	case models.RoleRecruiter:
		if profile, err := s.recruiterRepo.GetByUserID(ctx, user.ID); err == nil {
			result.RecruiterProfile = profile
		}
	}

	return result, nil
}

// Register creates a new account and an empty role-specific profile. Students
// must satisfy the configured email-domain policy and come out verified;
// recruiters start unapproved.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string, role models.RoleType) (*AuthResult, error) {
	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Password(password); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	// Domain policy is checked before anything is written
	if role == models.RoleStudent {
		if err := validation.StudentEmailDomain(email, s.studentEmailDomain); err != nil {
			return nil, err
		}
	}

	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		// College-domain students are considered verified on the local path;
		// recruiters go through out-of-band verification.
		Verified: role == models.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user, hash); err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	result := &AuthResult{User: user}
	switch role {
	case models.RoleStudent:
		profile := &models.StudentProfile{
			ID:           uuid.New().String(),
			UserID:       user.ID,
			FirstName:    firstName,
			LastName:     lastName,
			Year:         1,
			Semester:     1,
			CollegeEmail: email,
			Certificates: []string{},
			WorkStatus:   models.WorkStatusAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.studentRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("student profile creation error: %w", err)
		}
		result.StudentProfile = profile
	case models.RoleRecruiter:
		profile := &models.RecruiterProfile{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Approved:  false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.recruiterRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("recruiter profile creation error: %w", err)
		}
		result.RecruiterProfile = profile
	}

	s.logger.Info().Str("userId", user.ID).Str("role", string(role)).Msg("Registered user locally")
	return result, nil
}

// VerifyEmail marks a user's email as verified.
func (s *AuthService) VerifyEmail(ctx context.Context, userID string) (*models.User, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.userRepo.SetVerified(ctx, userID)
}

// ApproveRecruiter flips a recruiter profile to approved. Administrative
// action; there is no self-service path to it.
func (s *AuthService) ApproveRecruiter(ctx context.Context, profileID string) (*models.RecruiterProfile, error) {
	if err := simulateLatency(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.recruiterRepo.Apply(ctx, profileID, func(p *models.RecruiterProfile) {
		p.Approved = true
	})
}

// IssueToken creates an access token for the HTTP surface.
func (s *AuthService) IssueToken(user *models.User) (string, int64, error) {
	return s.jwtService.GenerateToken(user)
}
