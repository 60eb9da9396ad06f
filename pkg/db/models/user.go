package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// User represents a portal account. Buyers stay pending until staff approve
// them; admins are provisioned directly.
type User struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string              `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash  string              `gorm:"column:password_hash;not null"`
	CompanyName   string              `gorm:"column:company_name;not null"`
	ContactPerson string              `gorm:"column:contact_person;not null"`
	Phone         *string             `gorm:"column:phone"`
	Country       *string             `gorm:"column:country"`
	Status        enums.AccountStatus `gorm:"column:status;not null;default:'pending'"`
	Role          enums.UserRole      `gorm:"column:role;not null;default:'buyer'"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	LastLoginAt   *time.Time          `gorm:"column:last_login_at"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
