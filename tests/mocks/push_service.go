package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PushService struct {
	mock.Mock
}

func (m *PushService) SendPush(ctx context.Context, userID uuid.UUID, title, message string) error {
	args := m.Called(ctx, userID, title, message)
	return args.Error(0)
}
