package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/config"
	"github.com/greenacres/greenacres-backend/pkg/db/models"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
	"github.com/greenacres/greenacres-backend/pkg/logger"
	"github.com/greenacres/greenacres-backend/pkg/mail"
	"github.com/greenacres/greenacres-backend/pkg/security"
)

const tempPasswordLength = 12

// ResetPasswordService issues temporary credentials by email.
type ResetPasswordService interface {
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type resetPasswordStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// ResetPasswordServiceParams bundles the reset flow dependencies.
type ResetPasswordServiceParams struct {
	Store          resetPasswordStore
	Mailer         mail.Sender
	Logger         *logger.Logger
	PasswordConfig config.PasswordConfig
}

type resetPasswordService struct {
	store       resetPasswordStore
	mailer      mail.Sender
	logg        *logger.Logger
	passwordCfg config.PasswordConfig
}

// NewResetPasswordService builds the reset flow with the provided dependencies.
func NewResetPasswordService(params ResetPasswordServiceParams) (ResetPasswordService, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("reset store is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	return &resetPasswordService{
		store:       params.Store,
		mailer:      params.Mailer,
		logg:        params.Logger,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// ResetPassword replaces the credential with a temporary password and emails
// it to the account holder. The response is identical whether or not the
// email exists, so the endpoint cannot be used to enumerate accounts.
func (s *resetPasswordService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temporary password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash temporary password")
	}

	if err := s.store.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "Your temporary password",
		HTML:    resetPasswordHTML(user.ContactPerson, tempPassword),
	}
	if err := s.mailer.Send(ctx, msg); err != nil && s.logg != nil {
		s.logg.Error(ctx, "sending reset password email failed", err)
	}

	return nil
}

func resetPasswordHTML(contactPerson, tempPassword string) string {
	name := strings.TrimSpace(contactPerson)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		"<p>Hello %s,</p><p>Your password was reset on %s. Use the temporary password below to sign in, then change it right away.</p><p><strong>%s</strong></p>",
		name,
		time.Now().UTC().Format("2 January 2006"),
		tempPassword,
	)
}
