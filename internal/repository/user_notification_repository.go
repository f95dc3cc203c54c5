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

type UserNotificationRepository interface {
	// Create inserts a per-recipient record. When the record carries a
	// dedupe key and another row already owns it, nothing is inserted
	// and created is false.
	Create(ctx context.Context, un *domain.UserNotification) (created bool, err error)
	ExistsRecent(ctx context.Context, userID uuid.UUID, typ domain.UserNotificationType, since *time.Time) (bool, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]domain.UserNotification, error)
	DeleteByNotification(ctx context.Context, notificationID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.UserNotification, int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type userNotificationRepository struct {
	db *sqlx.DB
}

func NewUserNotificationRepository(db *sqlx.DB) UserNotificationRepository {
	return &userNotificationRepository{db: db}
}

func (r *userNotificationRepository) Create(ctx context.Context, un *domain.UserNotification) (bool, error) {
	query := `
		INSERT INTO user_notifications (id, notification_id, user_id, title, message, type, dedupe_key, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (dedupe_key) DO NOTHING
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		un.ID, un.NotificationID, un.UserID, un.Title, un.Message, un.Type, un.DedupeKey, un.DeliveredAt,
	).Scan(&un.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *userNotificationRepository) ExistsRecent(ctx context.Context, userID uuid.UUID, typ domain.UserNotificationType, since *time.Time) (bool, error) {
	var exists bool

	if since == nil {
		query := `SELECT EXISTS(SELECT 1 FROM user_notifications WHERE user_id = $1 AND type = $2)`
		err := r.db.GetContext(ctx, &exists, query, userID, typ)
		return exists, err
	}

	query := `SELECT EXISTS(SELECT 1 FROM user_notifications WHERE user_id = $1 AND type = $2 AND created_at >= $3)`
	err := r.db.GetContext(ctx, &exists, query, userID, typ, *since)
	return exists, err
}

func (r *userNotificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE user_notifications SET delivered_at = NOW() WHERE id = $1 AND delivered_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userNotificationRepository) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]domain.UserNotification, error) {
	var records []domain.UserNotification
	query := `SELECT * FROM user_notifications WHERE notification_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &records, query, notificationID)
	return records, err
}

func (r *userNotificationRepository) DeleteByNotification(ctx context.Context, notificationID uuid.UUID) error {
	query := `DELETE FROM user_notifications WHERE notification_id = $1`
	_, err := r.db.ExecContext(ctx, query, notificationID)
	return err
}

func (r *userNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.UserNotification, int64, error) {
	params.Validate()

	var total int64
	var records []domain.UserNotification

	if unreadOnly {
		countQuery := `SELECT COUNT(*) FROM user_notifications WHERE user_id = $1 AND read_at IS NULL`
		if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM user_notifications
			WHERE user_id = $1 AND read_at IS NULL
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &records, query, userID, params.PageSize, params.Offset())
		return records, total, err
	}

	countQuery := `SELECT COUNT(*) FROM user_notifications WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM user_notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &records, query, userID, params.PageSize, params.Offset())
	return records, total, err
}

func (r *userNotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE user_notifications SET read_at = NOW() WHERE id = $1 AND user_id = $2 AND read_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}

func (r *userNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE user_notifications SET read_at = NOW() WHERE user_id = $1 AND read_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *userNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM user_notifications WHERE user_id = $1 AND read_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
