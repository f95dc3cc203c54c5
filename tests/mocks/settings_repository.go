package mocks

import (
	"context"

	"griya-properti/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) GetWatermark(ctx context.Context) (*domain.WatermarkSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WatermarkSettings), args.Error(1)
}

func (m *SettingsRepository) UpsertWatermark(ctx context.Context, settings *domain.WatermarkSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
