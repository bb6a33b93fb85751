package controllers

import (
	"net/http"

	"github.com/glowbeauty/glow-backend/api/responses"
	"github.com/glowbeauty/glow-backend/api/validators"
	"github.com/glowbeauty/glow-backend/internal/catalog"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image" validate:"required"`
	Images      []string        `json:"images"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=5"`
	Stock       int             `json:"stock" validate:"gte=0"`
	IsNew       bool            `json:"is_new"`
	Discount    int             `json:"discount" validate:"gte=0,lte=100"`
}

type updateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Rating      *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsNew       *bool            `json:"is_new,omitempty"`
	Discount    *int             `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// AdminCreateProduct adds a listing to the catalog.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), catalog.CreateInput{
			Name:        payload.Name,
			Price:       payload.Price,
			Image:       payload.Image,
			Images:      payload.Images,
			Category:    payload.Category,
			Description: payload.Description,
			Rating:      payload.Rating,
			Stock:       payload.Stock,
			IsNew:       payload.IsNew,
			Discount:    payload.Discount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial update to a listing.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, catalog.UpdateInput{
			Name:        payload.Name,
			Price:       payload.Price,
			Image:       payload.Image,
			Images:      payload.Images,
			Category:    payload.Category,
			Description: payload.Description,
			Rating:      payload.Rating,
			Stock:       payload.Stock,
			IsNew:       payload.IsNew,
			Discount:    payload.Discount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a listing from the catalog.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
