package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
)

// MockExportRepo is a mock implementation of port.ExportRepository.
type MockExportRepo struct {
	mock.Mock
}

func (m *MockExportRepo) Create(ctx context.Context, record *domain.ExportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockExportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExportRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportRecord), args.Error(1)
}

func (m *MockExportRepo) List(ctx context.Context, offset, limit int) ([]domain.ExportRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExportRecord), args.Int(1), args.Error(2)
}

func (m *MockExportRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExportRepo) Prune(ctx context.Context, keep int) (int, error) {
	args := m.Called(ctx, keep)
	return args.Int(0), args.Error(1)
}
