package mocks

import (
	"context"
	"time"

	"griya-properti/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserNotificationRepository struct {
	mock.Mock
}

func (m *UserNotificationRepository) Create(ctx context.Context, un *domain.UserNotification) (bool, error) {
	args := m.Called(ctx, un)
	return args.Bool(0), args.Error(1)
}

func (m *UserNotificationRepository) ExistsRecent(ctx context.Context, userID uuid.UUID, typ domain.UserNotificationType, since *time.Time) (bool, error) {
	args := m.Called(ctx, userID, typ, since)
	return args.Bool(0), args.Error(1)
}

func (m *UserNotificationRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserNotificationRepository) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]domain.UserNotification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserNotification), args.Error(1)
}

func (m *UserNotificationRepository) DeleteByNotification(ctx context.Context, notificationID uuid.UUID) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *UserNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.UserNotification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.UserNotification), args.Get(1).(int64), args.Error(2)
}

func (m *UserNotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *UserNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
