package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// Inquiry is the durable record of a submitted buyer inquiry. Items are kept
// in submission order.
type Inquiry struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Status             enums.InquiryStatus `gorm:"column:status;not null;default:'new'"`
	TargetShipmentDate *time.Time          `gorm:"column:target_shipment_date;type:date"`
	Message            *string             `gorm:"column:message"`
	Items              []InquiryItem       `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// InquiryItem snapshots one requested lot. CoffeeName is denormalized at
// add-to-cart time and deliberately not kept in sync with the catalog.
type InquiryItem struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InquiryID         uuid.UUID      `gorm:"column:inquiry_id;type:uuid;not null;index"`
	CoffeeID          uuid.UUID      `gorm:"column:coffee_id;type:uuid;not null"`
	CoffeeName        string         `gorm:"column:coffee_name;not null"`
	Quantity          int            `gorm:"column:quantity;not null"`
	PreferredLocation enums.Location `gorm:"column:preferred_location;not null"`
	Position          int            `gorm:"column:position;not null"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
}
