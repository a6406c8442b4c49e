package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/app/repositories"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
	"github.com/unihire/unihire/internal/pkg/auth"
)

func newAuthService(t *testing.T) (*AuthService, *repositories.Repositories, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	repos := repositories.NewRepositories(store)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-0123456789abcdef",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	svc := NewAuthService(repos, jwtSvc, "@college.edu", 0, zerolog.Nop())
	return svc, repos, store
}

func TestRegisterStudent(t *testing.T) {
	svc, _, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)

	require.NotNil(t, result.User)
	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.True(t, result.User.Verified)
	assert.Nil(t, result.RecruiterProfile)

	require.NotNil(t, result.StudentProfile)
	assert.Equal(t, result.User.ID, result.StudentProfile.UserID)
	assert.Equal(t, models.WorkStatusAvailable, result.StudentProfile.WorkStatus)
	assert.Equal(t, 1, result.StudentProfile.Year)
	assert.Equal(t, "alex@college.edu", result.StudentProfile.CollegeEmail)
	assert.NotNil(t, result.StudentProfile.Certificates)
}

func TestRegisterRecruiter(t *testing.T) {
	svc, _, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), "morgan@acme.com", "password1", "Morgan", "Lee", models.RoleRecruiter)
	require.NoError(t, err)

	require.NotNil(t, result.User)
	assert.Equal(t, models.RoleRecruiter, result.User.Role)
	assert.False(t, result.User.Verified)
	assert.Nil(t, result.StudentProfile)

	require.NotNil(t, result.RecruiterProfile)
	assert.False(t, result.RecruiterProfile.Approved)
}

func TestRegisterStudentDomainPolicy(t *testing.T) {
	svc, _, store := newAuthService(t)

	_, err := svc.Register(context.Background(), "alex@gmail.com", "password1", "Alex", "Johnson", models.RoleStudent)
	require.Error(t, err)
	assert.Equal(t, "Students must register with a college email (@college.edu)", err.Error())

	// The policy check precedes every write
	_, getErr := store.Get(context.Background(), repositories.KeyUsers)
	assert.ErrorIs(t, getErr, kvstore.ErrKeyNotFound)
}

func TestRegisterRecruiterAnyDomain(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "morgan@gmail.com", "password1", "Morgan", "Lee", models.RoleRecruiter)
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "alex@college.edu", "short1", "Alex", "Johnson", models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = svc.Register(context.Background(), "alex@college.edu", "passwordonly", "Alex", "Johnson", models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	registered, err := svc.Register(ctx, "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)

	result, err := svc.Login(ctx, "alex@college.edu", "password1")
	require.NoError(t, err)

	assert.Equal(t, registered.User.ID, result.User.ID)
	require.NotNil(t, result.StudentProfile)
	assert.Equal(t, registered.StudentProfile.ID, result.StudentProfile.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alex@college.edu", "password2")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@college.edu", "password1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestApproveRecruiter(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	registered, err := svc.Register(ctx, "morgan@acme.com", "password1", "Morgan", "Lee", models.RoleRecruiter)
	require.NoError(t, err)

	profile, err := svc.ApproveRecruiter(ctx, registered.RecruiterProfile.ID)
	require.NoError(t, err)
	assert.True(t, profile.Approved)
}

func TestIssueToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	registered, err := svc.Register(ctx, "alex@college.edu", "password1", "Alex", "Johnson", models.RoleStudent)
	require.NoError(t, err)

	token, expiresIn, err := svc.IssueToken(registered.User)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresIn, int64(0))
}
