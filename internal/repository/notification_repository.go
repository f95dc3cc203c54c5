package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"griya-properti/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Notification, int64, error)
	UpdateDeliveryResult(ctx context.Context, notif *domain.Notification) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ClaimDueScheduled(ctx context.Context, limit int) ([]domain.Notification, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, channel, audience, specific_users, status, recipient_count, delivered_count, delivery, created_by, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.Title, notif.Message, notif.Channel, notif.Audience,
		notif.SpecificUsers, notif.Status, notif.RecipientCount, notif.DeliveredCount,
		notif.Delivery, notif.CreatedBy, notif.ScheduledAt,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	query := `
		SELECT * FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &notifications, query, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) UpdateDeliveryResult(ctx context.Context, notif *domain.Notification) error {
	query := `
		UPDATE notifications
		SET status = $2, recipient_count = $3, delivered_count = $4, delivery = $5, sent_at = $6
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		notif.ID, notif.Status, notif.RecipientCount, notif.DeliveredCount, notif.Delivery, notif.SentAt,
	)
	return err
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE notifications
		SET status = 'failed', delivered_count = 0,
		    delivery = jsonb_build_object('email_sent', 0, 'push_sent', 0, 'failed', recipient_count, 'errors', jsonb_build_array($2::text))
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, reason)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM notifications WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClaimDueScheduled flips due scheduled rows to pending and returns them.
// SKIP LOCKED keeps concurrent dispatchers from claiming the same row.
func (r *notificationRepository) ClaimDueScheduled(ctx context.Context, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := `
		UPDATE notifications
		SET status = 'pending'
		WHERE id IN (
			SELECT id FROM notifications
			WHERE status = 'scheduled' AND scheduled_at <= $1
			ORDER BY scheduled_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	err := r.db.SelectContext(ctx, &notifications, query, time.Now(), limit)
	return notifications, err
}
