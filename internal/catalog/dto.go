package catalog

import (
	"time"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// ProductDTO is the catalog listing as rendered to storefront clients.
type ProductDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	IsNew       bool            `json:"is_new"`
	Discount    int             `json:"discount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toDTO(product *models.Product) *ProductDTO {
	images := make([]string, len(product.Images))
	copy(images, product.Images)
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Images:      images,
		Category:    product.Category,
		Description: product.Description,
		Rating:      product.Rating,
		Stock:       product.Stock,
		IsNew:       product.IsNew,
		Discount:    product.Discount,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toSnapshot(product *models.Product) types.ProductSnapshot {
	images := make([]string, len(product.Images))
	copy(images, product.Images)
	return types.ProductSnapshot{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Images:      images,
		Category:    product.Category,
		Description: product.Description,
		Rating:      product.Rating,
		Stock:       product.Stock,
		IsNew:       product.IsNew,
		Discount:    product.Discount,
	}
}
