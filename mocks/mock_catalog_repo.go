package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, catalogID string) (*domain.CatalogEntry, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepo) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogEntry), args.Error(1)
}

func (m *MockCatalogRepo) Upsert(ctx context.Context, entry *domain.CatalogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
