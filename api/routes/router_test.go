package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glowbeauty/glow-backend/internal/catalog"
	"github.com/glowbeauty/glow-backend/pkg/auth"
	"github.com/glowbeauty/glow-backend/pkg/config"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct{}

func (fakeCatalog) Get(context.Context, int) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: 1, Name: "Rose Glow Serum", Price: decimal.NewFromInt(10)}, nil
}

func (fakeCatalog) Snapshot(context.Context, int) (types.ProductSnapshot, error) {
	return types.ProductSnapshot{ID: 1}, nil
}

func (fakeCatalog) List(context.Context, catalog.ListInput) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

func (fakeCatalog) Create(context.Context, catalog.CreateInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: 1}, nil
}

func (fakeCatalog) Update(context.Context, int, catalog.UpdateInput) (*catalog.ProductDTO, error) {
	return &catalog.ProductDTO{ID: 1}, nil
}

func (fakeCatalog) Delete(context.Context, int) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret-test-secret-test-secret",
			Issuer:            "glow-test",
			ExpirationMinutes: 15,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(testConfig(), logg, Services{Catalog: fakeCatalog{}}, Health{}, nil, nil)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductsListRoute(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrdersRequireAuth(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	router := newTestRouter(t)
	cfg := testConfig()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/products/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}

	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{UserID: "u1", Name: "Priya"})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/v1/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", rec.Code)
	}

	adminToken, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{UserID: "u2", Name: "Root", Admin: true})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/v1/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCartRouteRequiresSessionHeader(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session header, got %d", rec.Code)
	}
}
