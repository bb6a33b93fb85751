package wishlist

import (
	"encoding/json"
	"testing"

	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
)

func snapshot(id int) types.ProductSnapshot {
	return types.ProductSnapshot{
		ID:       id,
		Name:     "Amber Night Cream",
		Price:    decimal.RequireFromString("32.00"),
		Category: "skincare",
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s, changed := Add(Empty(), snapshot(1))
	if !changed || len(s.Items) != 1 {
		t.Fatalf("expected one saved item, got %+v (changed=%v)", s.Items, changed)
	}

	again, changed := Add(s, snapshot(1))
	if changed {
		t.Fatal("re-adding a saved product must report no change")
	}
	if len(again.Items) != 1 {
		t.Fatalf("expected one saved item, got %d", len(again.Items))
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s, _ := Add(Empty(), snapshot(3))
	s, _ = Add(s, snapshot(1))
	s, _ = Add(s, snapshot(2))

	ids := []int{s.Items[0].ID, s.Items[1].ID, s.Items[2].ID}
	if ids[0] != 3 || ids[1] != 1 || ids[2] != 2 {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestRemove(t *testing.T) {
	s, _ := Add(Empty(), snapshot(1))
	s, _ = Add(s, snapshot(2))

	next, changed := Remove(s, 1)
	if !changed || len(next.Items) != 1 || next.Items[0].ID != 2 {
		t.Fatalf("unexpected state after remove: %+v", next.Items)
	}

	if _, changed := Remove(next, 99); changed {
		t.Fatal("removing an absent id must be a no-op")
	}
}

func TestContains(t *testing.T) {
	s, _ := Add(Empty(), snapshot(1))
	if !s.Contains(1) {
		t.Fatal("expected Contains(1) to be true")
	}
	if s.Contains(2) {
		t.Fatal("expected Contains(2) to be false")
	}
}

func TestClear(t *testing.T) {
	s, _ := Add(Empty(), snapshot(1))
	if cleared := Clear(s); len(cleared.Items) != 0 {
		t.Fatalf("expected empty state, got %+v", cleared.Items)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	s, _ := Add(Empty(), snapshot(1))
	s, _ = Add(s, snapshot(2))
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := Restore(raw)
	if len(restored.Items) != 2 || restored.Items[0].ID != 1 {
		t.Fatalf("unexpected restored state %+v", restored.Items)
	}
}

func TestRestoreDiscardsCorruptBlobs(t *testing.T) {
	cases := map[string]string{
		"not json":       `{"items": [`,
		"duplicate ids":  `{"items":[{"id":1,"price":"10"},{"id":1,"price":"10"}]}`,
		"negative price": `{"items":[{"id":1,"price":"-3"}]}`,
	}
	for name, blob := range cases {
		if restored := Restore([]byte(blob)); len(restored.Items) != 0 {
			t.Fatalf("%s: expected empty state, got %+v", name, restored.Items)
		}
	}
}
