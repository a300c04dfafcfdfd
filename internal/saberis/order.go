package saberis

import (
	"crypto/md5"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	unknownCatalog = "Unknown Catalog"
	unknownBrand   = "Unknown Brand"

	dateLayout = "2006.01.02"
)

// dimensionPattern matches text lines carrying cabinet dimensions
// (W=../H=../D=..). They look like attribute lines but are noise.
var dimensionPattern = regexp.MustCompile(`W=.*H=.*D=`)

// BrandLookup resolves a catalog id to a brand name. The second return
// reports whether a brand is known for the catalog.
type BrandLookup func(catalogID string) (string, bool)

// Attribute is one accumulated key/value pair from the document's text
// lines. Order of accumulation is preserved.
type Attribute struct {
	Key   string
	Value string
}

// LineItem is a product line enriched with the attribute context that
// was in effect when it appeared in the document.
type LineItem struct {
	LineID      int
	Description string
	Quantity    float64
	Cost        float64
	Catalog     string
	Brand       string
	Attributes  []Attribute
}

// Order is a parsed export document.
type Order struct {
	Username        string
	CreatedAt       time.Time
	CustomerName    string
	Shipping        RawShipping
	ShippingAddress string
	Lines           []LineItem
	Catalogs        []string
	CostByCatalog   map[string]float64
}

// attrContext accumulates key/value pairs in document order. Setting an
// existing key updates its value in place; order reflects first sight.
type attrContext struct {
	keys   []string
	values map[string]string
}

func newAttrContext() *attrContext {
	return &attrContext{values: make(map[string]string)}
}

func (c *attrContext) set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

func (c *attrContext) delete(key string) {
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

func (c *attrContext) get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *attrContext) snapshot() []Attribute {
	attrs := make([]Attribute, 0, len(c.keys))
	for _, k := range c.keys {
		attrs = append(attrs, Attribute{Key: k, Value: c.values[k]})
	}
	return attrs
}

// ParseOrder walks the document's item list in order, accumulating
// attribute context from text lines and emitting one enriched LineItem
// per product line. The context is deliberately never reset between
// products: later products inherit every attribute seen so far unless a
// later text line overwrites it.
func ParseOrder(doc *Document, brandFor BrandLookup) *Order {
	node := doc.OrderDocument.Order

	username := node.Username
	if username == "" {
		username = "unknown"
	}
	createdAt, err := time.Parse(dateLayout, node.Date)
	if err != nil {
		createdAt = time.Unix(0, 0).UTC()
	}
	customerName := node.Customer.Name
	if customerName == "" {
		customerName = "Unnamed Client"
	}

	order := &Order{
		Username:        username,
		CreatedAt:       createdAt,
		CustomerName:    customerName,
		Shipping:        node.Shipping,
		ShippingAddress: node.Shipping.ShippingAddress(),
		CostByCatalog:   make(map[string]float64),
	}

	ctx := newAttrContext()
	seenCatalogs := make(map[string]bool)

	for _, raw := range node.Group.Item {
		switch strings.ToLower(raw.Type) {
		case "text":
			if !strings.Contains(raw.Description, "=") {
				continue
			}
			if dimensionPattern.MatchString(raw.Description) {
				continue
			}
			key, value, _ := strings.Cut(raw.Description, "=")
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			ctx.set(key, value)
			if key == "Catalog" {
				if !seenCatalogs[value] {
					seenCatalogs[value] = true
					order.Catalogs = append(order.Catalogs, value)
				}
				if brand, ok := brandFor(value); ok && brand != "" {
					ctx.set("Brand", brand)
				} else {
					// A catalog without a known brand must not
					// inherit the previous catalog's brand.
					ctx.delete("Brand")
				}
			}
		case "product":
			item := LineItem{
				LineID:      raw.LineID,
				Description: raw.Description,
				Quantity:    1,
				Cost:        0,
				Catalog:     unknownCatalog,
				Brand:       unknownBrand,
				Attributes:  ctx.snapshot(),
			}
			if raw.Quantity != nil {
				item.Quantity = float64(*raw.Quantity)
			}
			if raw.Cost != nil {
				item.Cost = float64(*raw.Cost)
			}
			if v, ok := ctx.get("Catalog"); ok && v != "" {
				item.Catalog = v
			}
			if v, ok := ctx.get("Brand"); ok && v != "" {
				item.Brand = v
			}
			order.CostByCatalog[item.Catalog] += item.Cost * item.Quantity
			order.Lines = append(order.Lines, item)
		}
	}
	return order
}

// UniqueKey derives a stable human-scannable key for the order:
// username, date, first catalog code, and a short content digest.
func (o *Order) UniqueKey() string {
	catalog := "NA"
	if len(o.Catalogs) > 0 {
		catalog = o.Catalogs[0]
	}
	var b strings.Builder
	for _, li := range o.Lines {
		fmt.Fprintf(&b, "%d|%s|%g|%g|%s|%s\n", li.LineID, li.Description, li.Quantity, li.Cost, li.Catalog, li.Brand)
	}
	digest := fmt.Sprintf("%x", md5.Sum([]byte(b.String())))[:4]
	return fmt.Sprintf("%s_%s_%s_%s", o.Username, o.CreatedAt.Format("20060102"), catalog, digest)
}
