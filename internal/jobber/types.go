package jobber

import "s2j/internal/domain"

// lineItemAttrs is the wire shape shared by the quote and job
// line-item create mutations.
type lineItemAttrs struct {
	Name                      string  `json:"name"`
	Description               string  `json:"description"`
	Quantity                  float64 `json:"quantity"`
	UnitPrice                 float64 `json:"unitPrice"`
	UnitCost                  float64 `json:"unitCost"`
	Taxable                   bool    `json:"taxable"`
	Category                  string  `json:"category"`
	SaveToProductsAndServices bool    `json:"saveToProductsAndServices"`
}

func toLineItemAttrs(items []domain.LineItemPayload) []lineItemAttrs {
	attrs := make([]lineItemAttrs, 0, len(items))
	for _, it := range items {
		attrs = append(attrs, lineItemAttrs{
			Name:                      it.Name,
			Description:               it.Description,
			Quantity:                  it.Quantity,
			UnitPrice:                 it.UnitPrice,
			UnitCost:                  it.UnitCost,
			Taxable:                   it.Taxable,
			Category:                  string(it.Category),
			SaveToProductsAndServices: it.SaveToProductsAndServices,
		})
	}
	return attrs
}

type addressNode struct {
	Street1    string `json:"street1"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type clientNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type propertyNode struct {
	ID      string      `json:"id"`
	Address addressNode `json:"address"`
}

type pageInfo struct {
	HasNextPage bool `json:"hasNextPage"`
}

type lineItemNode struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type lineItemsConnection struct {
	Nodes []lineItemNode `json:"nodes"`
}
