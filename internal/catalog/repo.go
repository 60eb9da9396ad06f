package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a coffee with its per-location prices.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	var coffee models.Coffee
	err := r.db.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("location ASC")
		}).
		First(&coffee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &coffee, nil
}

// List returns coffees with prices, top lots first then newest. When
// activeOnly is set, retired lots are excluded.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Coffee, error) {
	query := r.db.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("location ASC")
		}).
		Order("is_top_lot DESC, created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var out []models.Coffee
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// PriceAt returns the price row for the coffee at the given location, or nil
// when the coffee is not offered there.
func PriceAt(c *models.Coffee, location enums.Location) *models.CoffeePrice {
	if c == nil {
		return nil
	}
	for i := range c.Prices {
		if c.Prices[i].Location == location {
			return &c.Prices[i]
		}
	}
	return nil
}
