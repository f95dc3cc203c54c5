package mocks

import (
	"context"

	"griya-properti/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PropertyRepository struct {
	mock.Mock
}

func (m *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *PropertyRepository) ListByStatus(ctx context.Context, status domain.PropertyStatus, params domain.PaginationParams) ([]domain.Property, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Property), args.Get(1).(int64), args.Error(2)
}

func (m *PropertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Property, int64, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Property), args.Get(1).(int64), args.Error(2)
}

func (m *PropertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PropertyStatus, rejectionReason *string) error {
	args := m.Called(ctx, id, status, rejectionReason)
	return args.Error(0)
}

func (m *PropertyRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	args := m.Called(ctx, id, photoURL)
	return args.Error(0)
}
