package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// CoffeePrice carries per-location wholesale pricing and stock state.
// Each (coffee, location) pair has at most one row.
type CoffeePrice struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CoffeeID     uuid.UUID          `gorm:"column:coffee_id;type:uuid;not null;uniqueIndex:idx_coffee_prices_coffee_location"`
	Location     enums.Location     `gorm:"column:location;not null;uniqueIndex:idx_coffee_prices_coffee_location"`
	PricePerLb   decimal.Decimal    `gorm:"column:price_per_lb;type:numeric(8,2);not null"`
	Availability enums.Availability `gorm:"column:availability;not null;default:'in_stock'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
