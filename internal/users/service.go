package users

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
	"github.com/greenacres/greenacres-backend/pkg/logger"
	"github.com/greenacres/greenacres-backend/pkg/mail"
)

// UpdateStatusInput is the admin payload for the approval workflow.
type UpdateStatusInput struct {
	Status enums.AccountStatus `json:"status" validate:"required"`
}

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, status *enums.AccountStatus) ([]models.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AccountStatus) error
}

// Service exposes the admin account management operations.
type Service struct {
	repo         userStore
	mailer       mail.Sender
	logg         *logger.Logger
	loginBaseURL string
}

// NewService wires the account management service. loginBaseURL is where the
// approval email points the buyer.
func NewService(repo userStore, mailer mail.Sender, logg *logger.Logger, loginBaseURL string) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user store required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		repo:         repo,
		mailer:       mailer,
		logg:         logg,
		loginBaseURL: strings.TrimRight(loginBaseURL, "/"),
	}, nil
}

// List returns accounts, optionally filtered by approval status.
func (s *Service) List(ctx context.Context, status *enums.AccountStatus) ([]UserDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown account status")
	}
	rows, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// UpdateStatus moves an account to approved or rejected. Approval sends a
// best-effort notification email; a failed send never fails the update.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UserDTO, error) {
	if input.Status != enums.AccountStatusApproved && input.Status != enums.AccountStatusRejected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if user.Role != enums.UserRoleBuyer {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only buyer accounts go through approval")
	}

	previous := user.Status
	if err := s.repo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update account status")
	}
	user.Status = input.Status

	if input.Status == enums.AccountStatusApproved && previous != enums.AccountStatusApproved {
		msg := mail.Message{
			To:      user.Email,
			Subject: "Your buyer account has been approved",
			HTML:    approvalHTML(user, s.loginBaseURL),
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "sending approval email failed", err)
		}
	}

	return FromModel(user), nil
}

func approvalHTML(user *models.User, loginBaseURL string) string {
	name := strings.TrimSpace(user.ContactPerson)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		`<p>Hello %s,</p><p>Your buyer account for %s has been approved. You can now sign in to browse pricing and submit inquiries.</p><p><a href="%s/login">Sign in</a></p>`,
		html.EscapeString(name),
		html.EscapeString(user.CompanyName),
		loginBaseURL,
	)
}
