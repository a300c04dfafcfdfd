package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"s2j/internal/port"
)

// MockAlertSender is a mock implementation of port.AlertSender.
type MockAlertSender struct {
	mock.Mock
}

func (m *MockAlertSender) SendSyncFailureAlert(ctx context.Context, alert port.SyncFailureAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}
