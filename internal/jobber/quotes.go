package jobber

import (
	"context"
	"fmt"
	"strconv"

	"s2j/internal/domain"
	"s2j/internal/port"
)

const listQuotesQuery = `
query GetAllQuotes($cursor: String) {
  quotes(first: 50, after: $cursor, sort: [{key: CREATED_AT, direction: DESCENDING}]) {
    edges {
      cursor
      node {
        id
        quoteNumber
        title
        client { id name }
        property { id address { street1 city province postalCode } }
        amounts { total }
        quoteStatus
      }
    }
    pageInfo { hasNextPage }
  }
}`

const quoteDetailQuery = `
query GetQuoteDetails($quoteId: EncodedId!) {
  quote(id: $quoteId) {
    id
    client { id name }
    lineItems { nodes { id name quantity unitPrice } }
  }
}`

const quoteCreateLineItemsMutation = `
mutation QuoteCreateLineItems($quoteId: EncodedId!, $lineItems: [QuoteCreateLineItemAttributes!]!) {
  quoteCreateLineItems(quoteId: $quoteId, lineItems: $lineItems) {
    createdLineItems { id }
    userErrors { message path }
  }
}`

const quoteEditLineItemsMutation = `
mutation QuoteEditLineItems($quoteId: EncodedId!, $lineItems: [QuoteEditLineItemAttributes!]!) {
  quoteEditLineItems(quoteId: $quoteId, lineItems: $lineItems) {
    userErrors { message path }
  }
}`

const quoteDeleteLineItemsMutation = `
mutation QuoteDeleteLineItems($quoteId: EncodedId!, $input: QuoteDeleteLineItemsInput!) {
  quoteDeleteLineItems(quoteId: $quoteId, input: $input) {
    userErrors { message path }
  }
}`

func (c *Client) listQuotes(ctx context.Context, cursor string) (*port.TargetPage, error) {
	variables := map[string]any{}
	if cursor != "" {
		variables["cursor"] = cursor
	}
	var data struct {
		Quotes struct {
			Edges []struct {
				Cursor string `json:"cursor"`
				Node   struct {
					ID          string        `json:"id"`
					QuoteNumber int           `json:"quoteNumber"`
					Title       string        `json:"title"`
					Client      clientNode    `json:"client"`
					Property    *propertyNode `json:"property"`
					Amounts     struct {
						Total float64 `json:"total"`
					} `json:"amounts"`
					QuoteStatus string `json:"quoteStatus"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"quotes"`
	}
	if err := c.post(ctx, "listQuotes", listQuotesQuery, variables, &data); err != nil {
		return nil, err
	}

	page := &port.TargetPage{HasNextPage: data.Quotes.PageInfo.HasNextPage}
	for _, edge := range data.Quotes.Edges {
		item := port.TargetItem{
			ID:         edge.Node.ID,
			Type:       domain.TargetQuote,
			Number:     strconv.Itoa(edge.Node.QuoteNumber),
			ClientName: edge.Node.Client.Name,
			Total:      edge.Node.Amounts.Total,
			Status:     edge.Node.QuoteStatus,
		}
		if edge.Node.Property != nil {
			item.Address = port.TargetAddress{
				Street1:    edge.Node.Property.Address.Street1,
				City:       edge.Node.Property.Address.City,
				Province:   edge.Node.Property.Address.Province,
				PostalCode: edge.Node.Property.Address.PostalCode,
			}
		}
		page.Items = append(page.Items, item)
	}
	if page.HasNextPage && len(data.Quotes.Edges) > 0 {
		page.NextCursor = data.Quotes.Edges[len(data.Quotes.Edges)-1].Cursor
	}
	return page, nil
}

func (c *Client) quoteDetail(ctx context.Context, id string) (*port.TargetDetail, error) {
	var data struct {
		Quote *struct {
			ID        string              `json:"id"`
			Client    clientNode          `json:"client"`
			LineItems lineItemsConnection `json:"lineItems"`
		} `json:"quote"`
	}
	if err := c.post(ctx, "quoteDetail", quoteDetailQuery, map[string]any{"quoteId": id}, &data); err != nil {
		return nil, err
	}
	if data.Quote == nil {
		return nil, fmt.Errorf("jobber.quoteDetail: quote %s: %w", id, domain.ErrNotFound)
	}
	detail := &port.TargetDetail{ID: data.Quote.ID, ClientName: data.Quote.Client.Name}
	for _, n := range data.Quote.LineItems.Nodes {
		detail.LineItems = append(detail.LineItems, port.TargetLineItem{
			ID: n.ID, Name: n.Name, Quantity: n.Quantity, UnitPrice: n.UnitPrice,
		})
	}
	return detail, nil
}

func (c *Client) addQuoteLineItems(ctx context.Context, id string, items []domain.LineItemPayload) error {
	var data struct {
		Payload struct {
			CreatedLineItems []struct {
				ID string `json:"id"`
			} `json:"createdLineItems"`
			UserErrors []userError `json:"userErrors"`
		} `json:"quoteCreateLineItems"`
	}
	variables := map[string]any{"quoteId": id, "lineItems": toLineItemAttrs(items)}
	if err := c.post(ctx, "quoteCreateLineItems", quoteCreateLineItemsMutation, variables, &data); err != nil {
		return err
	}
	if len(data.Payload.UserErrors) > 0 {
		return &ValidationError{Op: "quoteCreateLineItems", Messages: userErrorMessages(data.Payload.UserErrors)}
	}
	return nil
}

func (c *Client) editQuoteLineItems(ctx context.Context, id string, updates []port.QuantityUpdate) error {
	attrs := make([]map[string]any, 0, len(updates))
	for _, u := range updates {
		attrs = append(attrs, map[string]any{"lineItemId": u.LineItemID, "quantity": u.Quantity})
	}
	var data struct {
		Payload struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"quoteEditLineItems"`
	}
	variables := map[string]any{"quoteId": id, "lineItems": attrs}
	if err := c.post(ctx, "quoteEditLineItems", quoteEditLineItemsMutation, variables, &data); err != nil {
		return err
	}
	if len(data.Payload.UserErrors) > 0 {
		return &ValidationError{Op: "quoteEditLineItems", Messages: userErrorMessages(data.Payload.UserErrors)}
	}
	return nil
}

func (c *Client) deleteQuoteLineItems(ctx context.Context, id string, lineItemIDs []string) error {
	var data struct {
		Payload struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"quoteDeleteLineItems"`
	}
	variables := map[string]any{"quoteId": id, "input": map[string]any{"lineItemIds": lineItemIDs}}
	if err := c.post(ctx, "quoteDeleteLineItems", quoteDeleteLineItemsMutation, variables, &data); err != nil {
		return err
	}
	if len(data.Payload.UserErrors) > 0 {
		return &ValidationError{Op: "quoteDeleteLineItems", Messages: userErrorMessages(data.Payload.UserErrors)}
	}
	return nil
}
