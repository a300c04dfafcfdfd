package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"s2j/internal/domain"
	"s2j/internal/port"
)

// MockTargetClient is a mock implementation of port.TargetClient.
type MockTargetClient struct {
	mock.Mock
}

func (m *MockTargetClient) ListItems(ctx context.Context, itemType domain.TargetItemType, cursor string) (*port.TargetPage, error) {
	args := m.Called(ctx, itemType, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TargetPage), args.Error(1)
}

func (m *MockTargetClient) GetDetail(ctx context.Context, itemType domain.TargetItemType, id string) (*port.TargetDetail, error) {
	args := m.Called(ctx, itemType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TargetDetail), args.Error(1)
}

func (m *MockTargetClient) AddLineItems(ctx context.Context, itemType domain.TargetItemType, id string, items []domain.LineItemPayload) error {
	args := m.Called(ctx, itemType, id, items)
	return args.Error(0)
}

func (m *MockTargetClient) UpdateLineItemQuantities(ctx context.Context, itemType domain.TargetItemType, id string, updates []port.QuantityUpdate) error {
	args := m.Called(ctx, itemType, id, updates)
	return args.Error(0)
}

func (m *MockTargetClient) DeleteLineItems(ctx context.Context, itemType domain.TargetItemType, id string, lineItemIDs []string) error {
	args := m.Called(ctx, itemType, id, lineItemIDs)
	return args.Error(0)
}

func (m *MockTargetClient) CreateClientAndProperty(ctx context.Context, input port.NewClientInput) (string, string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTargetClient) EnsureProducts(ctx context.Context, items []domain.LineItemPayload) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}
