package saberis_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"s2j/internal/saberis"
)

func docFromJSON(t *testing.T, payload string) *saberis.Document {
	t.Helper()
	doc, err := saberis.DecodeDocument([]byte(payload))
	assert.NoError(t, err)
	return doc
}

func noBrand(string) (string, bool) { return "", false }

func TestParseOrder_HeaderDefaults(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Date":"not a date"}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Equal(t, "unknown", order.Username)
	assert.Equal(t, "Unnamed Client", order.CustomerName)
	assert.Equal(t, time.Unix(0, 0).UTC(), order.CreatedAt)
	assert.Empty(t, order.Lines)
}

func TestParseOrder_SplitsOnFirstEquals(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Group":{"Item":[
		{"Type":"Text","Description":" Door Selection = Shaker=Extra "},
		{"Type":"Product","LineID":1,"Description":"Cabinet","Quantity":1,"Cost":10}
	]}}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Len(t, order.Lines, 1)
	assert.Equal(t, []saberis.Attribute{{Key: "Door Selection", Value: "Shaker=Extra"}}, order.Lines[0].Attributes)
}

func TestParseOrder_ContextCarriesAcrossProducts(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Group":{"Item":[
		{"Type":"Text","Description":"Door Selection=Shaker"},
		{"Type":"Product","LineID":1,"Description":"First","Quantity":1,"Cost":10},
		{"Type":"Text","Description":"Species / Finish=Oak"},
		{"Type":"Product","LineID":2,"Description":"Second","Quantity":1,"Cost":10}
	]}}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Len(t, order.Lines, 2)
	assert.Equal(t, []saberis.Attribute{
		{Key: "Door Selection", Value: "Shaker"},
	}, order.Lines[0].Attributes)
	assert.Equal(t, []saberis.Attribute{
		{Key: "Door Selection", Value: "Shaker"},
		{Key: "Species / Finish", Value: "Oak"},
	}, order.Lines[1].Attributes)
}

func TestParseOrder_OverwriteKeepsPosition(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Group":{"Item":[
		{"Type":"Text","Description":"Door Selection=Shaker"},
		{"Type":"Text","Description":"Species / Finish=Oak"},
		{"Type":"Text","Description":"Door Selection=Slab"},
		{"Type":"Product","LineID":1,"Description":"Cabinet","Quantity":1,"Cost":10}
	]}}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Equal(t, []saberis.Attribute{
		{Key: "Door Selection", Value: "Slab"},
		{Key: "Species / Finish", Value: "Oak"},
	}, order.Lines[0].Attributes)
}

func TestParseOrder_SkipsDimensionLines(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Group":{"Item":[
		{"Type":"Text","Description":"W=24 H=36 D=12"},
		{"Type":"Text","Description":"no equals sign here"},
		{"Type":"Product","LineID":1,"Description":"Cabinet","Quantity":1,"Cost":10}
	]}}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Empty(t, order.Lines[0].Attributes)
}

func TestParseOrder_BrandFollowsCatalog(t *testing.T) {
	brands := map[string]string{"KWP_24C1": "KWP"}
	lookup := func(id string) (string, bool) {
		b, ok := brands[id]
		return b, ok
	}
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Group":{"Item":[
		{"Type":"Text","Description":"Catalog=KWP_24C1"},
		{"Type":"Product","LineID":1,"Description":"First","Quantity":1,"Cost":10},
		{"Type":"Text","Description":"Catalog=MYSTERY"},
		{"Type":"Product","LineID":2,"Description":"Second","Quantity":1,"Cost":10}
	]}}}}`)

	order := saberis.ParseOrder(doc, lookup)

	assert.Equal(t, "KWP", order.Lines[0].Brand)
	// The second catalog has no known brand; the previous brand must not leak.
	assert.Equal(t, "Unknown Brand", order.Lines[1].Brand)
	assert.Equal(t, "MYSTERY", order.Lines[1].Catalog)
	assert.Equal(t, []string{"KWP_24C1", "MYSTERY"}, order.Catalogs)
}

func TestParseOrder_ProductDefaultsAndTotals(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Group":{"Item":[
		{"Type":"Text","Description":"Catalog=KWP_24C1"},
		{"Type":"Product","LineID":1,"Description":"NoNumbers"},
		{"Type":"Product","LineID":2,"Description":"Priced","Quantity":"2","Cost":"12.5"}
	]}}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Len(t, order.Lines, 2)
	assert.Equal(t, 1.0, order.Lines[0].Quantity)
	assert.Equal(t, 0.0, order.Lines[0].Cost)
	assert.Equal(t, 2.0, order.Lines[1].Quantity)
	assert.Equal(t, 12.5, order.Lines[1].Cost)
	assert.InDelta(t, 25.0, order.CostByCatalog["KWP_24C1"], 1e-9)
}

func TestOrderUniqueKey(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{
		"Username":"jdoe","Date":"2024.03.15",
		"Group":{"Item":[
			{"Type":"Text","Description":"Catalog=KWP_24C1"},
			{"Type":"Product","LineID":1,"Description":"Cabinet","Quantity":1,"Cost":10}
		]}}}}`)

	order := saberis.ParseOrder(doc, noBrand)
	key := order.UniqueKey()

	assert.Regexp(t, regexp.MustCompile(`^jdoe_20240315_KWP_24C1_[0-9a-f]{4}$`), key)
	assert.Equal(t, key, order.UniqueKey())
}

func TestOrderUniqueKey_NoCatalog(t *testing.T) {
	doc := docFromJSON(t, `{"SaberisOrderDocument":{"Order":{"Username":"jdoe","Date":"2024.03.15"}}}`)

	order := saberis.ParseOrder(doc, noBrand)

	assert.Contains(t, order.UniqueKey(), "_NA_")
}

func TestFlexFloatDecoding(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`" 12.5 "`, 12.5},
		{`""`, 0},
		{`"garbage"`, 0},
		{`null`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var f saberis.FlexFloat
			err := json.Unmarshal([]byte(tc.raw), &f)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, float64(f))
		})
	}
}

func TestShippingAddressJoin(t *testing.T) {
	s := saberis.RawShipping{Address: "123 Main St", City: "Toronto", StateOrProvince: "ON", ZipOrPostal: "M5V 1A1"}
	assert.Equal(t, "123 Main St, Toronto, ON", s.ShippingAddress())

	s = saberis.RawShipping{City: "Toronto"}
	assert.Equal(t, "Toronto", s.ShippingAddress())

	assert.Equal(t, "", saberis.RawShipping{}.ShippingAddress())
}

func TestDecodeDocument_Invalid(t *testing.T) {
	_, err := saberis.DecodeDocument([]byte("not json"))
	assert.Error(t, err)
}
