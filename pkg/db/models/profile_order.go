package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileOrder is the order record appended to a user's profile when a
// simulated checkout completes. Rows are immutable once written; later status
// transitions belong to external fulfillment.
type ProfileOrder struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string          `gorm:"column:user_id;not null;index:profile_orders_user_id_idx"`
	OrderRef  string          `gorm:"column:order_ref;not null;uniqueIndex:profile_orders_order_ref_key"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	Status    string          `gorm:"column:status;not null;default:'Processing'"`
	PlacedAt  time.Time       `gorm:"column:placed_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
