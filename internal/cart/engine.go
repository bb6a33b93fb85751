package cart

import (
	"encoding/json"

	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Line is one purchasable row: a product snapshot plus a quantity. At most
// one line exists per product id and quantity never drops below 1.
type Line struct {
	types.ProductSnapshot
	Quantity int `json:"quantity"`
}

// State is the full cart: lines in insertion order plus the running total.
// Total is maintained incrementally on every transition and must always equal
// the recomputed sum of price*quantity.
type State struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Empty returns the default cart state.
func Empty() State {
	return State{Items: []Line{}, Total: decimal.Zero}
}

// Subtotal recomputes the total from scratch. Used by tests to prove the
// incremental total never drifts.
func (s State) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range s.Items {
		sum = sum.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// Find returns the line for the product id, or nil.
func (s State) Find(productID int) *Line {
	for i := range s.Items {
		if s.Items[i].ID == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// Add increments the existing line's quantity by one, or appends a new line
// with quantity 1. Either way the total changes by exactly one unit price.
func Add(s State, product types.ProductSnapshot) State {
	next := clone(s)
	if line := next.Find(product.ID); line != nil {
		line.Quantity++
	} else {
		next.Items = append(next.Items, Line{ProductSnapshot: product, Quantity: 1})
	}
	next.Total = next.Total.Add(product.Price)
	return next
}

// Remove drops the matching line and subtracts its full line price. Reports
// false (state unchanged) when the id is absent.
func Remove(s State, productID int) (State, bool) {
	line := s.Find(productID)
	if line == nil {
		return s, false
	}
	next := clone(s)
	items := next.Items[:0]
	for _, candidate := range next.Items {
		if candidate.ID != productID {
			items = append(items, candidate)
		}
	}
	next.Items = items
	next.Total = next.Total.Sub(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	return next, true
}

// SetQuantity replaces the line's quantity and adjusts the total by
// price*(new-old). Quantities below 1 are rejected as a no-op: reaching zero
// requires an explicit Remove. Absent ids are also a no-op.
func SetQuantity(s State, productID, quantity int) (State, bool) {
	if quantity < 1 {
		return s, false
	}
	line := s.Find(productID)
	if line == nil {
		return s, false
	}
	if line.Quantity == quantity {
		return s, false
	}
	next := clone(s)
	updated := next.Find(productID)
	delta := quantity - updated.Quantity
	updated.Quantity = quantity
	next.Total = next.Total.Add(updated.Price.Mul(decimal.NewFromInt(int64(delta))))
	return next, true
}

// Clear resets to the empty state unconditionally.
func Clear(State) State {
	return Empty()
}

// Restore replaces the state wholesale from a stored blob. Anything that does
// not look like a cart (parse failure, quantity below 1, duplicate lines,
// negative price) is discarded in favor of the empty state; Restore never
// fails.
func Restore(raw []byte) State {
	if len(raw) == 0 {
		return Empty()
	}
	var restored State
	if err := json.Unmarshal(raw, &restored); err != nil {
		return Empty()
	}
	seen := make(map[int]struct{}, len(restored.Items))
	for _, line := range restored.Items {
		if line.Quantity < 1 || line.Price.IsNegative() {
			return Empty()
		}
		if _, dup := seen[line.ID]; dup {
			return Empty()
		}
		seen[line.ID] = struct{}{}
	}
	if restored.Items == nil {
		restored.Items = []Line{}
	}
	return restored
}

func clone(s State) State {
	items := make([]Line, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, Total: s.Total}
}
