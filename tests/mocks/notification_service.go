package mocks

import (
	"context"

	"griya-properti/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Send(ctx context.Context, createdBy uuid.UUID, input domain.SendNotificationInput) (*domain.Notification, error) {
	args := m.Called(ctx, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, []domain.UserNotification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Notification), args.Get(1).([]domain.UserNotification), args.Error(2)
}

func (m *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) Recipients(ctx context.Context, audience domain.NotificationAudience, specific []uuid.UUID) ([]domain.User, error) {
	args := m.Called(ctx, audience, specific)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *NotificationService) DispatchDue(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserNotification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.UserNotification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) SendWelcome(ctx context.Context, userID uuid.UUID) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

func (m *NotificationService) SendListingApproved(ctx context.Context, propertyID uuid.UUID) bool {
	args := m.Called(ctx, propertyID)
	return args.Bool(0)
}

func (m *NotificationService) SendListingRejected(ctx context.Context, propertyID uuid.UUID, reason string) bool {
	args := m.Called(ctx, propertyID, reason)
	return args.Bool(0)
}
