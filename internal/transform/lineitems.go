package transform

import (
	"fmt"
	"strings"

	"s2j/internal/domain"
	"s2j/internal/saberis"
)

// titleWorthyKeys are attribute keys whose values are promoted into the
// product name as well as the description.
var titleWorthyKeys = map[string]bool{
	"Door Selection": true,
	"Cabinet Style":  true,
}

// hiddenKeys are attribute keys that never appear in the customer-facing
// description. pricelevel is matched case-insensitively on top of these.
var hiddenKeys = map[string]bool{
	"Catalog": true,
	"Brand":   true,
}

// BuildLineItems converts a parsed order into target-system line item
// payloads. uiQuantity scales every line's quantity; multipliers maps
// catalog id to a cost multiplier, defaulting to 1.0 when absent.
func BuildLineItems(order *saberis.Order, uiQuantity float64, multipliers map[string]float64) []domain.LineItemPayload {
	payloads := make([]domain.LineItemPayload, 0, len(order.Lines))
	for _, li := range order.Lines {
		baseParts := make([]string, 0, 4)
		for _, p := range []string{li.Brand, StripBraces(li.Description)} {
			if p != "" {
				baseParts = append(baseParts, p)
			}
		}

		descLines := make([]string, 0, len(li.Attributes))
		for _, attr := range li.Attributes {
			if strings.EqualFold(strings.TrimSpace(attr.Key), "pricelevel") {
				continue
			}
			if hiddenKeys[attr.Key] {
				continue
			}
			descLines = append(descLines, fmt.Sprintf("%s: %s", attr.Key, attr.Value))
			if titleWorthyKeys[attr.Key] && attr.Value != "" {
				baseParts = append(baseParts, attr.Value)
			}
		}

		baseName := strings.Join(baseParts, " | ")
		description := strings.Join(descLines, "\n")
		name := fmt.Sprintf("%s | S2J(%s)", baseName, Signature(baseName+description))

		multiplier := 1.0
		if m, ok := multipliers[li.Catalog]; ok {
			multiplier = m
		}
		unitCost := li.Cost * multiplier

		payloads = append(payloads, domain.LineItemPayload{
			Name:                      name,
			Quantity:                  li.Quantity * uiQuantity,
			Description:               description,
			UnitPrice:                 unitCost,
			UnitCost:                  unitCost,
			Taxable:                   false,
			Category:                  domain.CategoryProduct,
			SaveToProductsAndServices: true,
		})
	}
	return payloads
}
