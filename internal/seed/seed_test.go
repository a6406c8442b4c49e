package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/auth"
)

func TestSeedCreatesDemoAccounts(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repos := repositories.NewRepositories(store)
	ctx := context.Background()

	require.NoError(t, Run(ctx, store, repos, zerolog.Nop()))

	student, err := repos.UserRepository.GetByEmail(ctx, DemoStudentEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, student.Role)
	assert.True(t, student.Verified)

	profile, err := repos.StudentProfileRepository.GetByUserID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkStatusAvailable, profile.WorkStatus)

	recruiter, err := repos.UserRepository.GetByEmail(ctx, DemoRecruiterEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRecruiter, recruiter.Role)

	recruiterProfile, err := repos.RecruiterProfileRepository.GetByUserID(ctx, recruiter.ID)
	require.NoError(t, err)
	assert.True(t, recruiterProfile.Approved)

	// The demo password verifies against the stored hash
	cred, err := repos.UserRepository.GetCredential(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(cred.PasswordHash, DemoPassword))
}

func TestSeedIsIdempotent(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repos := repositories.NewRepositories(store)
	ctx := context.Background()

	require.NoError(t, Run(ctx, store, repos, zerolog.Nop()))
	require.NoError(t, Run(ctx, store, repos, zerolog.Nop()))

	users, err := repos.UserRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
