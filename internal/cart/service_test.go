package cart

import (
	"context"
	"io"
	"testing"

	"github.com/glowbeauty/glow-backend/internal/state"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type stubProducts struct {
	snapshots map[int]types.ProductSnapshot
}

func (s *stubProducts) Snapshot(_ context.Context, productID int) (types.ProductSnapshot, error) {
	snap, ok := s.snapshots[productID]
	if !ok {
		return types.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return snap, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, store state.SnapshotStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store: store,
		Products: &stubProducts{snapshots: map[int]types.ProductSnapshot{
			1: snapshot(1, "24.50"),
			2: snapshot(2, "3.25"),
		}},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected an error for missing dependencies")
	}
}

func TestServiceAddPersistsSnapshot(t *testing.T) {
	store := state.NewMemoryStore()
	svc := newTestService(t, store)

	got, err := svc.Add(context.Background(), "sess-1", 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 1 {
		t.Fatalf("unexpected state %+v", got.Items)
	}

	raw, err := store.Load(context.Background(), "sess-1")
	if err != nil || raw == nil {
		t.Fatalf("expected a persisted snapshot, got %v (%v)", raw, err)
	}
	restored := Restore(raw)
	if !restored.Total.Equal(decimal.RequireFromString("24.50")) {
		t.Fatalf("persisted total %s", restored.Total)
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc := newTestService(t, state.NewMemoryStore())
	_, err := svc.Add(context.Background(), "sess-1", 99)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestServiceSurvivesWriteFailures(t *testing.T) {
	store := state.NewMemoryStore()
	store.FailWrites = true
	svc := newTestService(t, store)

	got, err := svc.Add(context.Background(), "sess-1", 1)
	if err != nil {
		t.Fatalf("Add must not fail when the snapshot write fails: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("unexpected state %+v", got.Items)
	}
}

func TestServiceRestoresFromStoredBlob(t *testing.T) {
	store := state.NewMemoryStore()
	store.Seed("sess-1", []byte(`{"items":[{"id":2,"name":"Velvet Lip Tint","price":"3.25","quantity":3}],"total":"9.75"}`))
	svc := newTestService(t, store)

	got, err := svc.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("unexpected restored state %+v", got.Items)
	}
	if !got.Total.Equal(decimal.RequireFromString("9.75")) {
		t.Fatalf("unexpected total %s", got.Total)
	}
}

func TestServiceDiscardsCorruptStoredBlob(t *testing.T) {
	store := state.NewMemoryStore()
	store.Seed("sess-1", []byte(`{"items":[{"id":2,"quantity":0}]`))
	svc := newTestService(t, store)

	got, err := svc.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("corrupt blob must degrade to the empty cart, got %+v", got.Items)
	}
}

func TestServiceClearPersistsEmptyState(t *testing.T) {
	store := state.NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := svc.Clear(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", got.Items)
	}

	raw, _ := store.Load(ctx, "sess-1")
	if restored := Restore(raw); len(restored.Items) != 0 {
		t.Fatalf("persisted snapshot must be empty, got %+v", restored.Items)
	}
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	store := state.NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-a", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	other, err := svc.Get(ctx, "sess-b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(other.Items) != 0 {
		t.Fatalf("sessions must not share state, got %+v", other.Items)
	}
}
