package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/unihire/unihire/internal/app/models"
	"github.com/unihire/unihire/internal/kvstore"
	"github.com/unihire/unihire/internal/pkg/apperrors"
)

// NotificationRepository persists per-user notifications.
type NotificationRepository struct {
	notifications *collection[models.Notification]
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(store kvstore.Store) *NotificationRepository {
	return &NotificationRepository{
		notifications: newCollection(store, KeyNotifications, func(n *models.Notification) string { return n.ID }),
	}
}

// Create stores a new notification.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.notifications.Add(ctx, notification)
}

// GetByID returns a single notification.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	notification, err := r.notifications.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrNotificationNotFound
	}
	return notification, err
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	items, err := r.notifications.Query(ctx, func(n *models.Notification) bool { return n.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	items, err := r.notifications.Query(ctx, func(n *models.Notification) bool {
		return n.UserID == userID && !n.Read
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// MarkRead marks a single notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	notification, err := r.notifications.Update(ctx, id, func(n *models.Notification) { n.Read = true })
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrNotificationNotFound
	}
	return notification, err
}

// MarkAllRead marks all of a user's unread notifications as read and returns
// how many were flipped.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread, err := r.notifications.Query(ctx, func(n *models.Notification) bool {
		return n.UserID == userID && !n.Read
	})
	if err != nil {
		return 0, err
	}
	for i := range unread {
		if _, err := r.MarkRead(ctx, unread[i].ID); err != nil {
			return i, err
		}
	}
	return len(unread), nil
}

// Delete removes a notification. Returns false when it did not exist.
func (r *NotificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.notifications.Delete(ctx, id)
}
