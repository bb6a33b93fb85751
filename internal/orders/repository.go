package orders

import (
	"context"

	"github.com/glowbeauty/glow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the profile order history.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends an order record. Rows are never updated after this.
func (r *Repository) Create(ctx context.Context, order *models.ProfileOrder) (*models.ProfileOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser returns the user's order history, most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.ProfileOrder, error) {
	var orders []models.ProfileOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("placed_at DESC, id DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
