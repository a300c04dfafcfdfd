package port

import (
	"context"

	"s2j/internal/domain"
)

// TargetAddress is a flattened property address on a quote or job.
type TargetAddress struct {
	Street1    string
	City       string
	Province   string
	PostalCode string
}

// TargetItem is a quote or job summary as listed for selection.
type TargetItem struct {
	ID         string
	Type       domain.TargetItemType
	Number     string
	ClientName string
	Address    TargetAddress
	Total      float64
	Status     string
}

// TargetPage is one page of quotes or jobs plus cursor state.
type TargetPage struct {
	Items       []TargetItem
	NextCursor  string
	HasNextPage bool
}

// TargetLineItem is an existing line item on a quote or job.
type TargetLineItem struct {
	ID        string
	Name      string
	Quantity  float64
	UnitPrice float64
}

// TargetDetail is a single quote or job with its line items and owning
// client, fetched before a send to diff against desired items.
type TargetDetail struct {
	ID         string
	ClientName string
	LineItems  []TargetLineItem
}

// QuantityUpdate adjusts the quantity of one existing line item.
type QuantityUpdate struct {
	LineItemID string
	Quantity   float64
}

// NewClientInput carries what the target system needs to create a client
// and its property on a mapping miss.
type NewClientInput struct {
	CustomerName string
	Address      TargetAddress
}

// TargetClient abstracts the field-service platform's API. Write methods
// return errors classifiable as transient or not (see jobber.IsTransient);
// the orchestrator owns the retry policy.
type TargetClient interface {
	ListItems(ctx context.Context, itemType domain.TargetItemType, cursor string) (*TargetPage, error)
	GetDetail(ctx context.Context, itemType domain.TargetItemType, id string) (*TargetDetail, error)
	AddLineItems(ctx context.Context, itemType domain.TargetItemType, id string, items []domain.LineItemPayload) error
	UpdateLineItemQuantities(ctx context.Context, itemType domain.TargetItemType, id string, updates []QuantityUpdate) error
	DeleteLineItems(ctx context.Context, itemType domain.TargetItemType, id string, lineItemIDs []string) error
	CreateClientAndProperty(ctx context.Context, input NewClientInput) (clientID, propertyID string, err error)
	EnsureProducts(ctx context.Context, items []domain.LineItemPayload) error
}
