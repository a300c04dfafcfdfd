package saberis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat unmarshals a JSON number that Saberis may emit as a number,
// a numeric string, an empty string, or null. Unparseable values decode
// to zero rather than failing the whole document.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// RawLine is one entry in an export document's item list: either a text
// attribute line or a product line, discriminated by Type.
type RawLine struct {
	Type        string     `json:"Type"`
	LineID      int        `json:"LineID"`
	Description string     `json:"Description"`
	Quantity    *FlexFloat `json:"Quantity"`
	List        FlexFloat  `json:"List"`
	Selling     FlexFloat  `json:"Selling"`
	Cost        *FlexFloat `json:"Cost"`
}

// RawShipping is the shipping block on an export document header.
type RawShipping struct {
	Address         string `json:"Address"`
	City            string `json:"City"`
	StateOrProvince string `json:"StateOrProvince"`
	ZipOrPostal     string `json:"ZipOrPostal"`
}

// RawCustomer carries the export-source customer identity.
type RawCustomer struct {
	Name string `json:"Name"`
}

// RawGroup directly contains the ordered item list.
type RawGroup struct {
	Item []RawLine `json:"Item"`
}

// RawOrder is the order node of an export document.
type RawOrder struct {
	Username string      `json:"Username"`
	Date     string      `json:"Date"`
	Customer RawCustomer `json:"Customer"`
	Shipping RawShipping `json:"Shipping"`
	Group    RawGroup    `json:"Group"`
}

// Document is the top-level export document shape.
type Document struct {
	OrderDocument struct {
		Order RawOrder `json:"Order"`
	} `json:"SaberisOrderDocument"`
}

// DecodeDocument parses raw export JSON into a Document.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("saberis.DecodeDocument: %w", err)
	}
	return &doc, nil
}

// ShippingAddress joins the non-empty shipping fields into the single
// display string stored on the manifest.
func (s RawShipping) ShippingAddress() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Address, s.City, s.StateOrProvince} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
