package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/glowbeauty/glow-backend/api/middleware"
	"github.com/glowbeauty/glow-backend/internal/cart"
	"github.com/glowbeauty/glow-backend/internal/state"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type stubProducts struct{}

func (stubProducts) Snapshot(_ context.Context, productID int) (types.ProductSnapshot, error) {
	if productID != 1 {
		return types.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return types.ProductSnapshot{
		ID:    1,
		Name:  "Rose Glow Serum",
		Price: decimal.RequireFromString("24.50"),
	}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newCartService(t *testing.T) cart.Service {
	t.Helper()
	svc, err := cart.NewService(cart.ServiceParams{
		Store:    state.NewMemoryStore(),
		Products: stubProducts{},
		Logger:   testLogger(),
	})
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	return svc
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(middleware.WithSessionID(r.Context(), sessionID))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return envelope
}

func TestAddCartItem(t *testing.T) {
	handler := AddCartItem(newCartService(t), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(`{"product_id":1}`))
	req = withSession(req, "sess-1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope, got %v", envelope)
	}
	items, ok := data["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one cart line, got %v", data["items"])
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	handler := AddCartItem(newCartService(t), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(`{"product_id":99}`))
	req = withSession(req, "sess-1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	apiErr, ok := envelope["error"].(map[string]any)
	if !ok || apiErr["code"] != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND error envelope, got %v", envelope)
	}
}

func TestAddCartItemRequiresSession(t *testing.T) {
	handler := AddCartItem(newCartService(t), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(`{"product_id":1}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without session, got %d", rec.Code)
	}
}

func TestSetCartQuantityRejectsZero(t *testing.T) {
	svc := newCartService(t)
	handler := SetCartQuantity(svc, testLogger())

	// Seed a line first.
	addReq := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(`{"product_id":1}`)), "sess-1")
	AddCartItem(svc, testLogger())(httptest.NewRecorder(), addReq)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/1", strings.NewReader(`{"quantity":0}`))
	req = withSession(req, "sess-1")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", "1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestClearCart(t *testing.T) {
	svc := newCartService(t)

	addReq := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(`{"product_id":1}`)), "sess-1")
	AddCartItem(svc, testLogger())(httptest.NewRecorder(), addReq)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "sess-1")
	rec := httptest.NewRecorder()
	ClearCart(svc, testLogger())(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if items := data["items"].([]any); len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", items)
	}
}
