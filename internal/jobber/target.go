package jobber

import (
	"context"
	"fmt"

	"s2j/internal/domain"
	"s2j/internal/port"
)

// The port.TargetClient methods dispatch on item type; quotes and jobs
// share payload shapes but use separate GraphQL surfaces.

func (c *Client) ListItems(ctx context.Context, itemType domain.TargetItemType, cursor string) (*port.TargetPage, error) {
	switch itemType {
	case domain.TargetQuote:
		return c.listQuotes(ctx, cursor)
	case domain.TargetJob:
		return c.listJobs(ctx, cursor)
	default:
		return nil, fmt.Errorf("jobber.ListItems: %q: %w", itemType, domain.ErrUnsupportedItemType)
	}
}

func (c *Client) GetDetail(ctx context.Context, itemType domain.TargetItemType, id string) (*port.TargetDetail, error) {
	switch itemType {
	case domain.TargetQuote:
		return c.quoteDetail(ctx, id)
	case domain.TargetJob:
		return c.jobDetail(ctx, id)
	default:
		return nil, fmt.Errorf("jobber.GetDetail: %q: %w", itemType, domain.ErrUnsupportedItemType)
	}
}

func (c *Client) AddLineItems(ctx context.Context, itemType domain.TargetItemType, id string, items []domain.LineItemPayload) error {
	if len(items) == 0 {
		return nil
	}
	switch itemType {
	case domain.TargetQuote:
		return c.addQuoteLineItems(ctx, id, items)
	case domain.TargetJob:
		return c.addJobLineItems(ctx, id, items)
	default:
		return fmt.Errorf("jobber.AddLineItems: %q: %w", itemType, domain.ErrUnsupportedItemType)
	}
}

func (c *Client) UpdateLineItemQuantities(ctx context.Context, itemType domain.TargetItemType, id string, updates []port.QuantityUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	switch itemType {
	case domain.TargetQuote:
		return c.editQuoteLineItems(ctx, id, updates)
	case domain.TargetJob:
		return c.editJobLineItems(ctx, id, updates)
	default:
		return fmt.Errorf("jobber.UpdateLineItemQuantities: %q: %w", itemType, domain.ErrUnsupportedItemType)
	}
}

func (c *Client) DeleteLineItems(ctx context.Context, itemType domain.TargetItemType, id string, lineItemIDs []string) error {
	if len(lineItemIDs) == 0 {
		return nil
	}
	switch itemType {
	case domain.TargetQuote:
		return c.deleteQuoteLineItems(ctx, id, lineItemIDs)
	case domain.TargetJob:
		return c.deleteJobLineItems(ctx, id, lineItemIDs)
	default:
		return fmt.Errorf("jobber.DeleteLineItems: %q: %w", itemType, domain.ErrUnsupportedItemType)
	}
}
