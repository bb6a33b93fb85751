package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRepo struct {
	products map[int]*models.Product
	listErr  error
	listed   []models.Product
}

func newStubRepo(products ...*models.Product) *stubRepo {
	repo := &stubRepo{products: make(map[int]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *stubRepo) FindByID(_ context.Context, id int) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *stubRepo) List(_ context.Context, category, _ string) ([]models.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if r.listed != nil {
		return r.listed, nil
	}
	var out []models.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubRepo) CreateAllocatingID(_ context.Context, product *models.Product) (*models.Product, error) {
	maxID := 0
	for id := range r.products {
		if id > maxID {
			maxID = id
		}
	}
	product.ID = maxID + 1
	clone := *product
	r.products[product.ID] = &clone
	return product, nil
}

func (r *stubRepo) Update(_ context.Context, product *models.Product) (*models.Product, error) {
	if _, ok := r.products[product.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *product
	r.products[product.ID] = &clone
	return product, nil
}

func (r *stubRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func listing(id int, name, category, price string) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Image:    "/img/" + name + ".jpg",
		Category: category,
		Rating:   4.2,
		Stock:    12,
	}
}

func newCatalog(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestGetUnknownProduct(t *testing.T) {
	svc := newCatalog(t, newStubRepo())
	_, err := svc.Get(context.Background(), 7)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	svc := newCatalog(t, newStubRepo())
	_, err := svc.List(context.Background(), ListInput{Sort: "cheapest-first"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListSurfacesDependencyError(t *testing.T) {
	repo := newStubRepo()
	repo.listErr = errors.New("connection refused")
	svc := newCatalog(t, repo)

	_, err := svc.List(context.Background(), ListInput{})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestCreateAllocatesSequentialIDs(t *testing.T) {
	svc := newCatalog(t, newStubRepo(listing(4, "Dew Mist", "skincare", "18.00")))

	created, err := svc.Create(context.Background(), CreateInput{
		Name:     "Satin Blush",
		Price:    decimal.RequireFromString("21.00"),
		Image:    "/img/satin-blush.jpg",
		Category: "makeup",
		Rating:   4.0,
		Stock:    5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("expected id 5 (max existing + 1), got %d", created.ID)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newCatalog(t, newStubRepo())
	cases := map[string]CreateInput{
		"missing name":     {Image: "/i.jpg", Category: "makeup", Price: decimal.NewFromInt(1)},
		"negative price":   {Name: "x", Image: "/i.jpg", Category: "makeup", Price: decimal.NewFromInt(-1)},
		"rating too high":  {Name: "x", Image: "/i.jpg", Category: "makeup", Rating: 5.5},
		"negative stock":   {Name: "x", Image: "/i.jpg", Category: "makeup", Stock: -1},
		"discount over":    {Name: "x", Image: "/i.jpg", Category: "makeup", Discount: 101},
		"missing category": {Name: "x", Image: "/i.jpg"},
	}
	for name, input := range cases {
		_, err := svc.Create(context.Background(), input)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestUpdateAppliesPartialInput(t *testing.T) {
	svc := newCatalog(t, newStubRepo(listing(1, "Dew Mist", "skincare", "18.00")))

	stock := 3
	price := decimal.RequireFromString("16.50")
	updated, err := svc.Update(context.Background(), 1, UpdateInput{Stock: &stock, Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Stock != 3 || !updated.Price.Equal(price) {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Name != "Dew Mist" {
		t.Fatalf("untouched fields must survive, got name %q", updated.Name)
	}
}

func TestUpdateRejectsInvalidResult(t *testing.T) {
	svc := newCatalog(t, newStubRepo(listing(1, "Dew Mist", "skincare", "18.00")))
	bad := decimal.RequireFromString("-1")
	_, err := svc.Update(context.Background(), 1, UpdateInput{Price: &bad})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc := newCatalog(t, newStubRepo())
	err := svc.Delete(context.Background(), 9)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSnapshotFreezesListing(t *testing.T) {
	repo := newStubRepo(listing(1, "Dew Mist", "skincare", "18.00"))
	svc := newCatalog(t, repo)

	snap, err := svc.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.ID != 1 || !snap.Price.Equal(decimal.RequireFromString("18.00")) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	// Mutating the listing afterwards must not leak into the snapshot.
	repo.products[1].Name = "Renamed"
	if snap.Name != "Dew Mist" {
		t.Fatalf("snapshot must be frozen, got %q", snap.Name)
	}
}
