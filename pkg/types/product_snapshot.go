package types

import "github.com/shopspring/decimal"

// ProductSnapshot is the frozen copy of a catalog product carried inside cart
// and wishlist state. Snapshots are taken at add time; later catalog edits do
// not retroactively change them.
type ProductSnapshot struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	IsNew       bool            `json:"is_new"`
	Discount    int             `json:"discount"`
}
