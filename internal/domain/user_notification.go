package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserNotificationType tags a per-recipient record. Broadcast rows come
// out of the dispatch loop; the rest are system-triggered and double as
// idempotency markers.
type UserNotificationType string

const (
	UserNotifBroadcast    UserNotificationType = "broadcast"
	UserNotifWelcome      UserNotificationType = "welcome"
	UserNotifOnboarding   UserNotificationType = "onboarding"
	UserNotifPostCreated  UserNotificationType = "post_created"
	UserNotifPostRejected UserNotificationType = "post_rejected"
)

// UserNotification links a notification to one recipient. Title and
// message are denormalized so the in-app inbox survives deletion of the
// parent broadcast record's mutable fields.
type UserNotification struct {
	ID             uuid.UUID            `json:"id" db:"id"`
	NotificationID uuid.UUID            `json:"notification_id" db:"notification_id"`
	UserID         uuid.UUID            `json:"user_id" db:"user_id"`
	Title          string               `json:"title" db:"title"`
	Message        string               `json:"message" db:"message"`
	Type           UserNotificationType `json:"type" db:"type"`
	DedupeKey      *string              `json:"-" db:"dedupe_key"`
	DeliveredAt    *time.Time           `json:"delivered_at,omitempty" db:"delivered_at"`
	ReadAt         *time.Time           `json:"read_at,omitempty" db:"read_at"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
}
