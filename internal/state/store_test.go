package state

import (
	"context"
	"testing"

	pkgredis "github.com/glowbeauty/glow-backend/pkg/redis"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	blob, err := store.Load(ctx, "sess-1")
	if err != nil || blob != nil {
		t.Fatalf("absent key must load as (nil, nil), got %v (%v)", blob, err)
	}

	if err := store.Save(ctx, "sess-1", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	blob, err = store.Load(ctx, "sess-1")
	if err != nil || string(blob) != `{"items":[]}` {
		t.Fatalf("unexpected loaded blob %q (%v)", blob, err)
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	blob, _ = store.Load(ctx, "sess-1")
	if blob != nil {
		t.Fatalf("deleted key must load as nil, got %q", blob)
	}
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte(`{"items":[]}`)
	if err := store.Save(ctx, "sess-1", original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	original[0] = 'X'

	blob, _ := store.Load(ctx, "sess-1")
	if string(blob) != `{"items":[]}` {
		t.Fatalf("stored blob must not alias the caller's slice, got %q", blob)
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	store := NewMemoryStore()
	store.FailWrites = true
	if err := store.Save(context.Background(), "sess-1", []byte("x")); err == nil {
		t.Fatal("expected write failure")
	}
}

func TestNewRedisStoreValidation(t *testing.T) {
	if _, err := NewRedisStore(nil, KindCart); err == nil {
		t.Fatal("nil client must be rejected")
	}
	if _, err := NewRedisStore(&pkgredis.Client{}, Kind("basket")); err == nil {
		t.Fatal("unknown kind must be rejected")
	}
	if _, err := NewRedisStore(&pkgredis.Client{}, KindWishlist); err != nil {
		t.Fatalf("wishlist kind must be accepted, got %v", err)
	}
}
