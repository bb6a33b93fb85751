package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing. Identifiers are small integers
// allocated by the admin service (max existing id + 1), matching the public
// catalog URLs.
type Product struct {
	ID          int             `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Image       string          `gorm:"column:image;not null"`
	Images      pq.StringArray  `gorm:"column:images;type:text[]"`
	Category    string          `gorm:"column:category;not null;index:products_category_idx"`
	Description string          `gorm:"column:description;not null;default:''"`
	Rating      float64         `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	IsNew       bool            `gorm:"column:is_new;not null;default:false"`
	Discount    int             `gorm:"column:discount;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
