package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/auth"
)

// Demo account credentials for local development.
const (
	DemoStudentEmail   = "student@college.edu"
	DemoRecruiterEmail = "recruiter@example.com"
	DemoPassword       = "password"
)

// Run populates the store with demo accounts on first start. A marker key
// makes the seeding idempotent across restarts with a persistent backend.
func Run(ctx context.Context, store kvstore.Store, repos *repositories.Repositories, logger zerolog.Logger) error {
	if _, err := store.Get(ctx, repositories.KeyInitialized); err == nil {
		logger.Debug().Msg("Store already seeded, skipping")
		return nil
	} else if !errors.Is(err, kvstore.ErrKeyNotFound) {
		return err
	}

	passwordHash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	now := time.Now()

	student := &models.User{
		ID:        uuid.New().String(),
		Email:     DemoStudentEmail,
		Role:      models.RoleStudent,
		FirstName: "Alex",
		LastName:  "Johnson",
		CreatedAt: now,
		Verified:  true,
	}
	if err := repos.UserRepository.Create(ctx, student, passwordHash); err != nil {
		return err
	}
	studentProfile := &models.StudentProfile{
		ID:           uuid.New().String(),
		UserID:       student.ID,
		FirstName:    student.FirstName,
		LastName:     student.LastName,
		Age:          21,
		Department:   "Computer Science",
		Year:         3,
		Semester:     6,
		CollegeEmail: student.Email,
		Certificates: []string{"AWS Cloud Practitioner"},
		Experience:   "Summer internship building internal tooling in Go.",
		WorkStatus:   models.WorkStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repos.StudentProfileRepository.Create(ctx, studentProfile); err != nil {
		return err
	}

	recruiter := &models.User{
		ID:        uuid.New().String(),
		Email:     DemoRecruiterEmail,
		Role:      models.RoleRecruiter,
		FirstName: "Morgan",
		LastName:  "Lee",
		CreatedAt: now,
		Verified:  true,
	}
	if err := repos.UserRepository.Create(ctx, recruiter, passwordHash); err != nil {
		return err
	}
	recruiterProfile := &models.RecruiterProfile{
		ID:          uuid.New().String(),
		UserID:      recruiter.ID,
		CompanyName: "Acme Robotics",
		Industry:    "Technology",
		Website:     "https://acme.example.com",
		Approved:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repos.RecruiterProfileRepository.Create(ctx, recruiterProfile); err != nil {
		return err
	}

	if err := store.Set(ctx, repositories.KeyInitialized, "true"); err != nil {
		return err
	}
	logger.Info().
		Str("student", DemoStudentEmail).
		Str("recruiter", DemoRecruiterEmail).
		Msg("Seeded demo accounts")
	return nil
}
