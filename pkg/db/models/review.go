package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating attached to a catalog product. One review per
// user per product.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID int       `gorm:"column:product_id;not null;index:reviews_product_id_idx;uniqueIndex:reviews_product_user_key"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:reviews_product_user_key"`
	UserName  string    `gorm:"column:user_name;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
