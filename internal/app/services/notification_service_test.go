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
)

func newNotificationService(t *testing.T) (*NotificationService, *repositories.Repositories) {
	t.Helper()
	repos := repositories.NewRepositories(kvstore.NewMemoryStore())
	return NewNotificationService(repos, zerolog.Nop()), repos
}

func TestNotificationLifecycle(t *testing.T) {
	svc, _ := newNotificationService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "u-1", "Welcome", "Your account is ready", models.NotificationInfo, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u-1", "Reminder", "Complete your profile", models.NotificationWarning, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u-2", "Other", "Not yours", models.NotificationInfo, nil)
	require.NoError(t, err)

	list, err := svc.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	count, err := svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	read, err := svc.MarkRead(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	count, err = svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	flipped, err := svc.MarkAllRead(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	count, err = svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// The other user's feed is untouched
	count, err = svc.UnreadCount(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkReadMissing(t *testing.T) {
	svc, _ := newNotificationService(t)

	_, err := svc.MarkRead(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestNotifyJobOfferSkipsMissingAccounts(t *testing.T) {
	svc, _ := newNotificationService(t)
	ctx := context.Background()

	offer := &models.JobOffer{
		ID:          "offer-1",
		RecruiterID: "ghost-recruiter",
		StudentID:   "ghost-student",
		Position:    "Backend Engineer",
		Status:      models.OfferStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	// Must not panic or create anything when both accounts are gone
	svc.NotifyJobOffer(ctx, offer, OfferCreated)

	list, err := svc.ListForUser(ctx, "ghost-student")
	require.NoError(t, err)
	assert.Empty(t, list)
}
