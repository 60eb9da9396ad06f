package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            uuid.UUID           `json:"id"`
	Email         string              `json:"email"`
	CompanyName   string              `json:"company_name"`
	ContactPerson string              `json:"contact_person"`
	Phone         *string             `json:"phone,omitempty"`
	Country       *string             `json:"country,omitempty"`
	Status        enums.AccountStatus `json:"status"`
	Role          enums.UserRole      `json:"role"`
	IsActive      bool                `json:"is_active"`
	LastLoginAt   *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email         string
	PasswordHash  string
	CompanyName   string
	ContactPerson string
	Phone         *string
	Country       *string
	Status        enums.AccountStatus
	Role          enums.UserRole
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		CompanyName:   u.CompanyName,
		ContactPerson: u.ContactPerson,
		Phone:         u.Phone,
		Country:       u.Country,
		Status:        u.Status,
		Role:          u.Role,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	status := c.Status
	if status == "" {
		status = enums.AccountStatusPending
	}
	role := c.Role
	if role == "" {
		role = enums.UserRoleBuyer
	}

	return &models.User{
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Country:       c.Country,
		Status:        status,
		Role:          role,
		IsActive:      true,
	}
}
