package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"s2j/internal/port"
)

// MockExportSource is a mock implementation of port.ExportSource.
type MockExportSource struct {
	mock.Mock
}

func (m *MockExportSource) ListUnexported(ctx context.Context) ([]port.ExportHeader, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.ExportHeader), args.Error(1)
}

func (m *MockExportSource) FetchDocument(ctx context.Context, guid string) ([]byte, error) {
	args := m.Called(ctx, guid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
