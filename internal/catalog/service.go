package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/glowbeauty/glow-backend/internal/cart"
	"github.com/glowbeauty/glow-backend/pkg/db/models"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the catalog read paths plus the admin CRUD surface.
type Service interface {
	cart.ProductReader

	Get(ctx context.Context, productID int) (*ProductDTO, error)
	List(ctx context.Context, input ListInput) ([]ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, productID int, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID int) error
}

// ListInput narrows and orders the storefront grid.
type ListInput struct {
	Category string
	Sort     string
}

// CreateInput holds the validated payload for a new listing.
type CreateInput struct {
	Name        string
	Price       decimal.Decimal
	Image       string
	Images      []string
	Category    string
	Description string
	Rating      float64
	Stock       int
	IsNew       bool
	Discount    int
}

// UpdateInput holds optional mutation values for a listing.
type UpdateInput struct {
	Name        *string
	Price       *decimal.Decimal
	Image       *string
	Images      *[]string
	Category    *string
	Description *string
	Rating      *float64
	Stock       *int
	IsNew       *bool
	Discount    *int
}

type repository interface {
	FindByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context, category, sort string) ([]models.Product, error)
	CreateAllocatingID(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo repository
}

// NewService constructs the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, productID int) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapReadError(err, "product not found")
	}
	return toDTO(product), nil
}

// Snapshot freezes the listing into the copy cart and wishlist lines carry.
func (s *service) Snapshot(ctx context.Context, productID int) (types.ProductSnapshot, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return types.ProductSnapshot{}, mapReadError(err, "product not found")
	}
	return toSnapshot(product), nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]ProductDTO, error) {
	sort := strings.TrimSpace(input.Sort)
	if _, ok := orderByForSort[sort]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order").
			WithDetails(map[string]string{"sort": sort})
	}

	products, err := s.repo.List(ctx, strings.TrimSpace(input.Category), sort)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *toDTO(&products[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	if err := validateListing(input.Name, input.Image, input.Category, input.Price, input.Rating, input.Stock, input.Discount); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Image:       input.Image,
		Images:      input.Images,
		Category:    input.Category,
		Description: input.Description,
		Rating:      input.Rating,
		Stock:       input.Stock,
		IsNew:       input.IsNew,
		Discount:    input.Discount,
	}
	created, err := s.repo.CreateAllocatingID(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return toDTO(created), nil
}

func (s *service) Update(ctx context.Context, productID int, input UpdateInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapReadError(err, "product not found")
	}

	applyUpdate(product, input)
	if err := validateListing(product.Name, product.Image, product.Category, product.Price, product.Rating, product.Stock, product.Discount); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return toDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, productID int) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.Discount != nil {
		product.Discount = *input.Discount
	}
}

func validateListing(name, image, category string, price decimal.Decimal, rating float64, stock, discount int) error {
	details := map[string]string{}
	if strings.TrimSpace(name) == "" {
		details["name"] = "name is required"
	}
	if strings.TrimSpace(image) == "" {
		details["image"] = "image is required"
	}
	if strings.TrimSpace(category) == "" {
		details["category"] = "category is required"
	}
	if price.IsNegative() {
		details["price"] = "price cannot be negative"
	}
	if rating < 0 || rating > 5 {
		details["rating"] = "rating must be between 0 and 5"
	}
	if stock < 0 {
		details["stock"] = "stock cannot be negative"
	}
	if discount < 0 || discount > 100 {
		details["discount"] = "discount must be between 0 and 100"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product listing").WithDetails(details)
	}
	return nil
}

func mapReadError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading product")
}
