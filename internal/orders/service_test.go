package orders

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	rows []models.ProfileOrder
}

func (r *stubRepo) Create(_ context.Context, order *models.ProfileOrder) (*models.ProfileOrder, error) {
	r.rows = append(r.rows, *order)
	return order, nil
}

func (r *stubRepo) ListByUser(_ context.Context, userID string) ([]models.ProfileOrder, error) {
	var out []models.ProfileOrder
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlacedAt.After(out[j].PlacedAt) })
	return out, nil
}

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestAppendWritesProcessingStatus(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Append(context.Background(), AppendInput{
		UserID:   "u1",
		OrderRef: "ORD-1718000000000-A1B2C3",
		Total:    decimal.RequireFromString("48.75"),
		PlacedAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if created.Status != "Processing" {
		t.Fatalf("expected Processing, got %q", created.Status)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected one stored row, got %d", len(repo.rows))
	}
}

func TestAppendValidation(t *testing.T) {
	svc, _ := newTestService(t)
	cases := map[string]AppendInput{
		"missing user":   {OrderRef: "ORD-1-A", Total: decimal.NewFromInt(1)},
		"missing ref":    {UserID: "u1", Total: decimal.NewFromInt(1)},
		"negative total": {UserID: "u1", OrderRef: "ORD-1-A", Total: decimal.NewFromInt(-1)},
	}
	for name, input := range cases {
		_, err := svc.Append(context.Background(), input)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	older := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	if _, err := svc.Append(ctx, AppendInput{UserID: "u1", OrderRef: "ORD-1-A", Total: decimal.NewFromInt(10), PlacedAt: older}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := svc.Append(ctx, AppendInput{UserID: "u1", OrderRef: "ORD-2-B", Total: decimal.NewFromInt(20), PlacedAt: newer}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := svc.Append(ctx, AppendInput{UserID: "u2", OrderRef: "ORD-3-C", Total: decimal.NewFromInt(30), PlacedAt: newer}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := svc.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].OrderRef != "ORD-2-B" || got[1].OrderRef != "ORD-1-A" {
		t.Fatalf("expected newest first, got %q then %q", got[0].OrderRef, got[1].OrderRef)
	}
}
