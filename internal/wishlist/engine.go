package wishlist

import (
	"encoding/json"

	"github.com/glowbeauty/glow-backend/pkg/types"
)

// State is the saved-for-later set: product snapshots in insertion order,
// at most one per product id, no quantities.
type State struct {
	Items []types.ProductSnapshot `json:"items"`
}

// Empty returns the default wishlist state.
func Empty() State {
	return State{Items: []types.ProductSnapshot{}}
}

// Contains reports whether the product is already saved.
func (s State) Contains(productID int) bool {
	for _, item := range s.Items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Add appends the snapshot unless the product is already saved, in which
// case the state is returned unchanged: adding is idempotent.
func Add(s State, product types.ProductSnapshot) (State, bool) {
	if s.Contains(product.ID) {
		return s, false
	}
	next := clone(s)
	next.Items = append(next.Items, product)
	return next, true
}

// Remove drops the saved product. Reports false when the id is absent.
func Remove(s State, productID int) (State, bool) {
	if !s.Contains(productID) {
		return s, false
	}
	next := clone(s)
	items := next.Items[:0]
	for _, item := range next.Items {
		if item.ID != productID {
			items = append(items, item)
		}
	}
	next.Items = items
	return next, true
}

// Clear resets to the empty state unconditionally.
func Clear(State) State {
	return Empty()
}

// Restore replaces the state wholesale from a stored blob, discarding
// anything malformed (parse failure, duplicate ids, negative price) in favor
// of the empty state. Restore never fails.
func Restore(raw []byte) State {
	if len(raw) == 0 {
		return Empty()
	}
	var restored State
	if err := json.Unmarshal(raw, &restored); err != nil {
		return Empty()
	}
	seen := make(map[int]struct{}, len(restored.Items))
	for _, item := range restored.Items {
		if item.Price.IsNegative() {
			return Empty()
		}
		if _, dup := seen[item.ID]; dup {
			return Empty()
		}
		seen[item.ID] = struct{}{}
	}
	if restored.Items == nil {
		restored.Items = []types.ProductSnapshot{}
	}
	return restored
}

func clone(s State) State {
	items := make([]types.ProductSnapshot, len(s.Items))
	copy(items, s.Items)
	return State{Items: items}
}
