package catalog

import (
	"context"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Sort orders accepted by List.
const (
	SortDefault   = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortName      = "name"
)

var orderByForSort = map[string]string{
	SortDefault:   "id ASC",
	SortPriceAsc:  "price ASC, id ASC",
	SortPriceDesc: "price DESC, id ASC",
	SortRating:    "rating DESC, id ASC",
	SortName:      "name ASC, id ASC",
}

// Repository wires catalog persistence to the shared GORM connection.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product row.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products for the storefront grid, optionally narrowed to one
// category. The sort key must already be validated against orderByForSort.
func (r *Repository) List(ctx context.Context, category, sort string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	orderBy, ok := orderByForSort[sort]
	if !ok {
		orderBy = orderByForSort[SortDefault]
	}

	var products []models.Product
	if err := query.Order(orderBy).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// NextID allocates the identifier for a new listing: one past the current
// maximum, so public catalog URLs stay small and stable.
func (r *Repository) NextID(ctx context.Context) (int, error) {
	var maxID int
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).
		Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// Create inserts the product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CreateAllocatingID assigns the next identifier and inserts the row in one
// transaction so concurrent creates cannot collide on max+1.
func (r *Repository) CreateAllocatingID(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := r.WithTx(tx)
		nextID, err := repo.NextID(ctx)
		if err != nil {
			return err
		}
		product.ID = nextID
		_, err = repo.Create(ctx, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves all mutable columns of the product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRating stores the recomputed review average on the listing.
func (r *Repository) UpdateRating(ctx context.Context, id int, rating float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("rating", rating).
		Error
}
