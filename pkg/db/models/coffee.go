package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/greenacres/greenacres-backend/pkg/db/types"
	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// Coffee represents a single exportable lot in the catalog.
type Coffee struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReferenceCode string             `gorm:"column:reference_code;not null;uniqueIndex"`
	Region        string             `gorm:"column:region;not null"`
	Grade         string             `gorm:"column:grade;not null"`
	Station       *string            `gorm:"column:station"`
	Preparation   enums.Preparation  `gorm:"column:preparation;not null"`
	CropYear      string             `gorm:"column:crop_year;not null"`
	BagSizeKg     int                `gorm:"column:bag_size_kg;not null;default:60"`
	Description   *string            `gorm:"column:description"`
	TastingNotes  dbtypes.StringList `gorm:"column:tasting_notes;type:text[]"`
	ImageURL      *string            `gorm:"column:image_url"`
	IsTopLot      bool               `gorm:"column:is_top_lot;not null;default:false"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	Prices        []CoffeePrice      `gorm:"foreignKey:CoffeeID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayName is the denormalized name captured into cart and inquiry items
// at add time, e.g. "Yirgacheffe G1 Washed".
func (c Coffee) DisplayName() string {
	return fmt.Sprintf("%s %s %s", c.Region, c.Grade, c.Preparation.Label())
}
