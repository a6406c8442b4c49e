package models

import "time"

// NotificationType classifies a notification for display purposes
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// RelatedType identifies what kind of record a notification points at
type RelatedType string

const (
	RelatedJobOffer RelatedType = "job_offer"
	RelatedProfile  RelatedType = "profile"
	RelatedSystem   RelatedType = "system"
)

// NotificationRelation links a notification to the record that caused it
type NotificationRelation struct {
	Type RelatedType `json:"type"`
	ID   string      `json:"id,omitempty"`
}

// Notification is a persisted, per-user message created by domain side effects
// (job offer created/accepted/declined and the like).
type Notification struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	Type      NotificationType      `json:"type"`
	RelatedTo *NotificationRelation `json:"relatedTo,omitempty"`
	Read      bool                  `json:"read"`
	CreatedAt time.Time             `json:"createdAt"`
}
