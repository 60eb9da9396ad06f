package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// PublicCoffeeDTO is the marketing-site view of a lot. It never carries
// wholesale pricing.
type PublicCoffeeDTO struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	ReferenceCode string            `json:"reference_code"`
	Region        string            `json:"region"`
	Grade         string            `json:"grade"`
	Station       *string           `json:"station,omitempty"`
	Preparation   enums.Preparation `json:"preparation"`
	CropYear      string            `json:"crop_year"`
	BagSizeKg     int               `json:"bag_size_kg"`
	Description   *string           `json:"description,omitempty"`
	TastingNotes  []string          `json:"tasting_notes"`
	ImageURL      *string           `json:"image_url,omitempty"`
	IsTopLot      bool              `json:"is_top_lot"`
	CreatedAt     time.Time         `json:"created_at"`
}

// LocationPriceDTO is per-warehouse pricing and stock state.
type LocationPriceDTO struct {
	Location      enums.Location     `json:"location"`
	LocationLabel string             `json:"location_label"`
	PricePerLb    decimal.Decimal    `json:"price_per_lb"`
	Availability  enums.Availability `json:"availability"`
}

// PortalCoffeeDTO extends the public shape with pricing for approved buyers.
type PortalCoffeeDTO struct {
	PublicCoffeeDTO
	Prices []LocationPriceDTO `json:"prices"`
}

func publicFromModel(c *models.Coffee) *PublicCoffeeDTO {
	if c == nil {
		return nil
	}
	notes := append([]string(nil), []string(c.TastingNotes)...)
	if notes == nil {
		notes = []string{}
	}
	return &PublicCoffeeDTO{
		ID:            c.ID,
		Name:          c.DisplayName(),
		ReferenceCode: c.ReferenceCode,
		Region:        c.Region,
		Grade:         c.Grade,
		Station:       c.Station,
		Preparation:   c.Preparation,
		CropYear:      c.CropYear,
		BagSizeKg:     c.BagSizeKg,
		Description:   c.Description,
		TastingNotes:  notes,
		ImageURL:      c.ImageURL,
		IsTopLot:      c.IsTopLot,
		CreatedAt:     c.CreatedAt,
	}
}

func portalFromModel(c *models.Coffee) *PortalCoffeeDTO {
	if c == nil {
		return nil
	}
	prices := make([]LocationPriceDTO, 0, len(c.Prices))
	for _, p := range c.Prices {
		prices = append(prices, LocationPriceDTO{
			Location:      p.Location,
			LocationLabel: p.Location.Label(),
			PricePerLb:    p.PricePerLb,
			Availability:  p.Availability,
		})
	}
	return &PortalCoffeeDTO{
		PublicCoffeeDTO: *publicFromModel(c),
		Prices:          prices,
	}
}
