package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
)

// MockClientMappingRepo is a mock implementation of
// port.ClientMappingRepository.
type MockClientMappingRepo struct {
	mock.Mock
}

func (m *MockClientMappingRepo) GetByName(ctx context.Context, customerName string) (*domain.ClientMapping, error) {
	args := m.Called(ctx, customerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientMapping), args.Error(1)
}

func (m *MockClientMappingRepo) Create(ctx context.Context, mapping *domain.ClientMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}
