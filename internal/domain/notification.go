package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
	ChannelBoth  NotificationChannel = "both"
)

func (c NotificationChannel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelBoth:
		return true
	default:
		return false
	}
}

func (c NotificationChannel) IncludesEmail() bool {
	return c == ChannelEmail || c == ChannelBoth
}

func (c NotificationChannel) IncludesPush() bool {
	return c == ChannelPush || c == ChannelBoth
}

type NotificationAudience string

const (
	AudienceAll      NotificationAudience = "all"
	AudienceBuyers   NotificationAudience = "buyers"
	AudienceSellers  NotificationAudience = "sellers"
	AudienceAgents   NotificationAudience = "agents"
	AudienceSpecific NotificationAudience = "specific"
)

type NotificationStatus string

const (
	StatusPending   NotificationStatus = "pending"
	StatusSent      NotificationStatus = "sent"
	StatusFailed    NotificationStatus = "failed"
	StatusScheduled NotificationStatus = "scheduled"
)

// DeliveryMeta carries the per-channel outcome of one dispatch. It is
// written once, after the send loop finishes.
type DeliveryMeta struct {
	EmailSent int      `json:"email_sent"`
	PushSent  int      `json:"push_sent"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

func (m DeliveryMeta) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *DeliveryMeta) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = DeliveryMeta{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for DeliveryMeta: %T", src)
	}
}

// UUIDList is a jsonb-backed uuid slice, used for the explicit recipient
// list of specific-audience notifications.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for UUIDList: %T", src)
	}
}

// Notification is the broadcast record. One row per dispatch; the
// per-recipient delivery log lives in user_notifications.
type Notification struct {
	ID             uuid.UUID            `json:"id" db:"id"`
	Title          string               `json:"title" db:"title"`
	Message        string               `json:"message" db:"message"`
	Channel        NotificationChannel  `json:"channel" db:"channel"`
	Audience       NotificationAudience `json:"audience" db:"audience"`
	SpecificUsers  UUIDList             `json:"specific_users,omitempty" db:"specific_users"`
	Status         NotificationStatus   `json:"status" db:"status"`
	RecipientCount int                  `json:"recipient_count" db:"recipient_count"`
	DeliveredCount int                  `json:"delivered_count" db:"delivered_count"`
	Delivery       DeliveryMeta         `json:"delivery" db:"delivery"`
	CreatedBy      uuid.UUID            `json:"created_by" db:"created_by"`
	ScheduledAt    *time.Time           `json:"scheduled_at,omitempty" db:"scheduled_at"`
	SentAt         *time.Time           `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
}

type SendNotificationInput struct {
	Title         string               `json:"title" validate:"required"`
	Message       string               `json:"message" validate:"required"`
	Channel       NotificationChannel  `json:"channel" validate:"omitempty,oneof=email push both"`
	Audience      NotificationAudience `json:"audience" validate:"omitempty,oneof=all buyers sellers agents specific"`
	SpecificUsers []uuid.UUID          `json:"specific_users,omitempty"`
	ScheduledAt   *time.Time           `json:"scheduled_at,omitempty"`
}
