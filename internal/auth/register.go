package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/internal/users"
	"github.com/greenacres/greenacres-backend/pkg/config"
	"github.com/greenacres/greenacres-backend/pkg/db"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
	"github.com/greenacres/greenacres-backend/pkg/security"
)

// RegisterRequest contains the payload required to request a buyer account.
type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	CompanyName   string  `json:"company_name" validate:"required"`
	ContactPerson string  `json:"contact_person" validate:"required"`
	Phone         *string `json:"phone,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// RegisterResponse returns the created account pending approval.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}

// RegisterService handles buyer onboarding.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

type registrationMetrics interface {
	IncRegistration()
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	Metrics        registrationMetrics
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	metrics     registrationMetrics
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		metrics:     params.Metrics,
	}, nil
}

// Register creates a pending buyer account. New accounts cannot browse the
// catalog or submit inquiries until staff approve them.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:         email,
			PasswordHash:  passwordHash,
			CompanyName:   req.CompanyName,
			ContactPerson: req.ContactPerson,
			Phone:         req.Phone,
			Country:       req.Country,
			Status:        enums.AccountStatusPending,
			Role:          enums.UserRoleBuyer,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncRegistration()
	}
	return &RegisterResponse{User: created}, nil
}
