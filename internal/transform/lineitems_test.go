package transform_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"s2j/internal/saberis"
	"s2j/internal/transform"
)

func TestSignature_DeterministicSixHex(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{6}$`)

	for _, input := range []string{"", "Cabinet", "Shaker | Door", "ünïcode"} {
		first := transform.Signature(input)
		second := transform.Signature(input)
		assert.Equal(t, first, second)
		assert.Regexp(t, hexPattern, first)
	}
	assert.NotEqual(t, transform.Signature("a"), transform.Signature("b"))
}

func TestStripBraces(t *testing.T) {
	assert.Equal(t, "Panel  Door", transform.StripBraces("Panel {internal-note} Door"))
	assert.Equal(t, "AB", transform.StripBraces("A{x}{y}B"))
	assert.Equal(t, "no braces", transform.StripBraces("no braces"))
	assert.Equal(t, "", transform.StripBraces("{everything}"))
}

func TestBuildLineItems_EndToEnd(t *testing.T) {
	order := &saberis.Order{
		Lines: []saberis.LineItem{{
			Description: "Cabinet {spec-9}",
			Quantity:    2,
			Cost:        100,
			Catalog:     "KWP_24C1",
			Brand:       "Unknown Brand",
			Attributes: []saberis.Attribute{
				{Key: "Catalog", Value: "KWP_24C1"},
				{Key: "Door Selection", Value: "Shaker"},
			},
		}},
	}

	items := transform.BuildLineItems(order, 3, map[string]float64{"KWP_24C1": 1.1})

	assert.Len(t, items, 1)
	item := items[0]
	assert.InDelta(t, 6, item.Quantity, 1e-9)
	assert.InDelta(t, 110, item.UnitCost, 1e-9)
	assert.InDelta(t, 110, item.UnitPrice, 1e-9)
	assert.Contains(t, item.Name, "Shaker")
	assert.Regexp(t, regexp.MustCompile(`\| S2J\([0-9a-f]{6}\)$`), item.Name)
	assert.Contains(t, item.Description, "Door Selection: Shaker")
	assert.NotContains(t, item.Description, "Catalog:")
	assert.False(t, item.Taxable)
	assert.True(t, item.SaveToProductsAndServices)
}

func TestBuildLineItems_MultiplierDefaultsToOne(t *testing.T) {
	order := &saberis.Order{
		Lines: []saberis.LineItem{{
			Description: "TP182484",
			Quantity:    1,
			Cost:        50,
			Catalog:     "UNPRICED",
			Brand:       "Acme",
		}},
	}

	items := transform.BuildLineItems(order, 1, map[string]float64{"OTHER": 2})

	assert.Len(t, items, 1)
	assert.InDelta(t, 50, items[0].UnitCost, 1e-9)
}

func TestBuildLineItems_HidesPricingAttributes(t *testing.T) {
	order := &saberis.Order{
		Lines: []saberis.LineItem{{
			Description: "TP182484",
			Quantity:    1,
			Cost:        10,
			Catalog:     "KWP_24C1",
			Brand:       "KWP",
			Attributes: []saberis.Attribute{
				{Key: "Catalog", Value: "KWP_24C1"},
				{Key: "Brand", Value: "KWP"},
				{Key: "PriceLevel", Value: "3"},
				{Key: "Species / Finish", Value: "Oak"},
			},
		}},
	}

	items := transform.BuildLineItems(order, 1, nil)

	assert.Len(t, items, 1)
	desc := items[0].Description
	assert.Equal(t, "Species / Finish: Oak", desc)
	assert.NotContains(t, desc, "PriceLevel")
	assert.NotContains(t, desc, "Brand:")
}

func TestBuildLineItems_NameIsStable(t *testing.T) {
	order := &saberis.Order{
		Lines: []saberis.LineItem{{
			Description: "Cabinet",
			Quantity:    1,
			Cost:        10,
			Catalog:     "C1",
			Brand:       "Acme",
			Attributes: []saberis.Attribute{
				{Key: "Cabinet Style", Value: "Euro"},
			},
		}},
	}

	first := transform.BuildLineItems(order, 1, nil)
	second := transform.BuildLineItems(order, 2, map[string]float64{"C1": 5})

	assert.Equal(t, first[0].Name, second[0].Name)
	assert.Equal(t, first[0].Description, second[0].Description)
	assert.True(t, strings.HasPrefix(first[0].Name, "Acme | Cabinet | Euro | S2J("))
}
