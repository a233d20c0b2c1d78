package inventree

import (
	"fmt"
	"strconv"
	"strings"
)

// Part is the subset of the InvenTree part record the scheduler cares
// about.
type Part struct {
	PK         int     `json:"pk"`
	Name       string  `json:"name"`
	PricingMin float64 `json:"pricing_min"`
}

// StockItem is one stock entry for a part. Older server versions expose
// the location name inline, newer ones nest it under location_detail;
// purchase_price arrives as a number, a quoted decimal, or null.
type StockItem struct {
	PK             int        `json:"pk"`
	Quantity       float64    `json:"quantity"`
	LocationName   string     `json:"location_name"`
	PurchasePrice  PriceValue `json:"purchase_price"`
	LocationDetail struct {
		Name string `json:"name"`
	} `json:"location_detail"`
}

// PriceValue decodes the lenient price representations the API emits.
type PriceValue float64

// UnmarshalJSON accepts numbers, quoted decimals and null.
func (p *PriceValue) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse price %q: %w", s, err)
	}
	*p = PriceValue(f)
	return nil
}

// Location returns the stock location name regardless of server version.
func (s StockItem) Location() string {
	if s.LocationName != "" {
		return s.LocationName
	}
	return s.LocationDetail.Name
}

// Candidate pairs a part with its in-stock items after location
// filtering.
type Candidate struct {
	Part  Part        `json:"part"`
	Stock []StockItem `json:"stock"`
	Price float64     `json:"price"`
}

// Quantity returns the total stocked quantity across the candidate's
// items.
func (c Candidate) Quantity() float64 {
	total := 0.0
	for _, s := range c.Stock {
		total += s.Quantity
	}
	return total
}

// SalesOrder is a created sales order reference.
type SalesOrder struct {
	PK          int    `json:"pk"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
}

// Company is the subset of the company record used for email delivery.
type Company struct {
	PK    int    `json:"pk"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
