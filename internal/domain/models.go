package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportRecord is one manifest row: a Saberis export that has been ingested
// and may or may not have been sent to Jobber yet. Rows are append-only;
// SentToJobber is the only field mutated after creation and it only ever
// transitions false to true.
type ExportRecord struct {
	ID               uuid.UUID `db:"id" json:"id"`
	SourceGUID       string    `db:"source_guid" json:"source_guid"`
	StoredPath       string    `db:"stored_path" json:"stored_path"`
	IngestedAt       time.Time `db:"ingested_at" json:"ingested_at"`
	ExportDate       string    `db:"export_date" json:"export_date"`
	CustomerName     string    `db:"customer_name" json:"customer_name"`
	Username         string    `db:"username" json:"username"`
	ShippingAddress  string    `db:"shipping_address" json:"shipping_address"`
	SentToJobber     bool      `db:"sent_to_jobber" json:"sent_to_jobber"`
}

// ClientMapping links a Saberis customer name to the Jobber client (and the
// property created alongside it). At most one mapping exists per distinct
// customer name.
type ClientMapping struct {
	CustomerName     string    `db:"customer_name" json:"customer_name"`
	JobberClientID   string    `db:"jobber_client_id" json:"jobber_client_id"`
	JobberPropertyID string    `db:"jobber_property_id" json:"jobber_property_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// CatalogEntry holds per-catalog pricing factors and the brand used for
// product naming. Multiplier and Margin are nil when no pricing has been
// configured for the catalog.
type CatalogEntry struct {
	CatalogID  string     `db:"catalog_id" json:"catalog_id"`
	Brand      *string    `db:"brand" json:"brand"`
	Multiplier *float64   `db:"multiplier" json:"multiplier"`
	Margin     *float64   `db:"margin" json:"margin"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// MultiplierOrDefault returns the configured cost multiplier, or 1.0 when
// the catalog has no pricing configured.
func (c *CatalogEntry) MultiplierOrDefault() float64 {
	if c == nil || c.Multiplier == nil {
		return 1.0
	}
	return *c.Multiplier
}

// LineItemPayload is the line item shape written to the target system.
// Immutable once built; one instance per product item processed.
type LineItemPayload struct {
	Name                      string           `json:"name"`
	Quantity                  float64          `json:"quantity"`
	Description               string           `json:"description"`
	UnitPrice                 float64          `json:"unitPrice"`
	UnitCost                  float64          `json:"unitCost"`
	Taxable                   bool             `json:"taxable"`
	Category                  LineItemCategory `json:"category"`
	SaveToProductsAndServices bool             `json:"saveToProductsAndServices"`
}
