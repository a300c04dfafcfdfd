package jobber

import (
	"context"

	"s2j/internal/domain"
)

const listProductsQuery = `
query GetAllProducts($cursor: String) {
  productOrServices(first: 250, after: $cursor) {
    edges {
      cursor
      node { id name }
    }
    pageInfo { hasNextPage }
  }
}`

const productEditMutation = `
mutation ProductsAndServicesEdit($productOrServiceId: EncodedId!, $input: ProductsAndServicesEditInput!) {
  productsAndServicesEdit(productOrServiceId: $productOrServiceId, input: $input) {
    userErrors { message path }
  }
}`

const productCreateMutation = `
mutation ProductsAndServicesCreate($input: ProductsAndServicesInput!) {
  productsAndServicesCreate(input: $input) {
    productOrService { id name }
    userErrors { message path }
  }
}`

// listAllProducts pages through the full products-and-services catalog
// and returns a name-to-id index.
func (c *Client) listAllProducts(ctx context.Context) (map[string]string, error) {
	products := make(map[string]string)
	cursor := ""
	for {
		variables := map[string]any{}
		if cursor != "" {
			variables["cursor"] = cursor
		}
		var data struct {
			ProductOrServices struct {
				Edges []struct {
					Cursor string `json:"cursor"`
					Node   struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"node"`
				} `json:"edges"`
				PageInfo pageInfo `json:"pageInfo"`
			} `json:"productOrServices"`
		}
		if err := c.post(ctx, "listProducts", listProductsQuery, variables, &data); err != nil {
			return nil, err
		}
		edges := data.ProductOrServices.Edges
		for _, edge := range edges {
			if edge.Node.ID != "" && edge.Node.Name != "" {
				products[edge.Node.Name] = edge.Node.ID
			}
		}
		if !data.ProductOrServices.PageInfo.HasNextPage || len(edges) == 0 {
			return products, nil
		}
		cursor = edges[len(edges)-1].Cursor
	}
}

// EnsureProducts makes sure every payload has a matching entry in the
// products-and-services catalog with its internal unit cost current.
// Existing entries are updated, missing ones created.
func (c *Client) EnsureProducts(ctx context.Context, items []domain.LineItemPayload) error {
	if len(items) == 0 {
		return nil
	}
	existing, err := c.listAllProducts(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if id, ok := existing[item.Name]; ok {
			var data struct {
				Payload struct {
					UserErrors []userError `json:"userErrors"`
				} `json:"productsAndServicesEdit"`
			}
			variables := map[string]any{
				"productOrServiceId": id,
				"input":              map[string]any{"internalUnitCost": item.UnitCost},
			}
			if err := c.post(ctx, "productsAndServicesEdit", productEditMutation, variables, &data); err != nil {
				return err
			}
			if len(data.Payload.UserErrors) > 0 {
				return &ValidationError{Op: "productsAndServicesEdit", Messages: userErrorMessages(data.Payload.UserErrors)}
			}
			continue
		}

		var data struct {
			Payload struct {
				ProductOrService *struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"productOrService"`
				UserErrors []userError `json:"userErrors"`
			} `json:"productsAndServicesCreate"`
		}
		variables := map[string]any{
			"input": map[string]any{
				"name":             item.Name,
				"category":         string(domain.CategoryProduct),
				"internalUnitCost": item.UnitCost,
				"defaultUnitCost":  0,
			},
		}
		if err := c.post(ctx, "productsAndServicesCreate", productCreateMutation, variables, &data); err != nil {
			return err
		}
		if len(data.Payload.UserErrors) > 0 {
			return &ValidationError{Op: "productsAndServicesCreate", Messages: userErrorMessages(data.Payload.UserErrors)}
		}
		if data.Payload.ProductOrService != nil {
			existing[data.Payload.ProductOrService.Name] = data.Payload.ProductOrService.ID
		}
	}
	return nil
}
