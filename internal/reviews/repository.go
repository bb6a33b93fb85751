package reviews

import (
	"context"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires review persistence to the shared GORM connection.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads the review row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByProductAndUser loads the user's review on the product, if any.
func (r *Repository) FindByProductAndUser(ctx context.Context, productID int, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		First(&review, "product_id = ? AND user_id = ?", productID, userID).
		Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProduct returns a product's reviews, newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).
		Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create inserts the review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Update saves the review's mutable columns.
func (r *Repository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageRating computes the product's mean rating, 0 when unreviewed.
func (r *Repository) AverageRating(ctx context.Context, productID int) (float64, error) {
	var average float64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&average).
		Error
	if err != nil {
		return 0, err
	}
	return average, nil
}
