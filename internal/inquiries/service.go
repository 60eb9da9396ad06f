package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/internal/cart"
	"github.com/greenacres/greenacres-backend/pkg/config"
	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
	"github.com/greenacres/greenacres-backend/pkg/logger"
	"github.com/greenacres/greenacres-backend/pkg/mail"
	"github.com/greenacres/greenacres-backend/pkg/pagination"
)

// Service exposes inquiry submission, listing and the admin status lifecycle.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*InquiryDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResponse, error)
	ListAll(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) (*ListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*InquiryDTO, error)
}

type repository interface {
	Create(ctx context.Context, inquiry *models.Inquiry, items []models.InquiryItem) (*models.Inquiry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Inquiry, *string, error)
	ListAll(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) ([]models.Inquiry, *string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InquiryStatus) error
}

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type cartSnapshot interface {
	Load(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type submissionMetrics interface {
	IncInquirySubmitted()
	IncInquiryEmailFailed()
}

type service struct {
	repo    repository
	users   userLookup
	cart    cartSnapshot
	mailer  mail.Sender
	metrics submissionMetrics
	cfg     config.InquiryConfig
	logg    *logger.Logger
}

// NewService wires the inquiry service.
func NewService(repo repository, users userLookup, cartStore cartSnapshot, mailer mail.Sender, metrics submissionMetrics, cfg config.InquiryConfig, logg *logger.Logger) (Service, error) {
	switch {
	case repo == nil:
		return nil, fmt.Errorf("inquiry repository required")
	case users == nil:
		return nil, fmt.Errorf("user lookup required")
	case cartStore == nil:
		return nil, fmt.Errorf("cart snapshot required")
	case mailer == nil:
		return nil, fmt.Errorf("mailer required")
	case metrics == nil:
		return nil, fmt.Errorf("metrics required")
	case logg == nil:
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		users:   users,
		cart:    cartStore,
		mailer:  mailer,
		metrics: metrics,
		cfg:     cfg,
		logg:    logg,
	}, nil
}

// Submit persists the inquiry first, then sends the admin and buyer emails.
// Persistence failure aborts before any email leaves; email failure never
// fails the submission.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*InquiryDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	items, fromCart, err := s.resolveItems(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{
		UserID:             userID,
		Status:             enums.InquiryStatusNew,
		TargetShipmentDate: input.TargetShipmentDate,
		Message:            input.Message,
	}
	created, err := s.repo.Create(ctx, inquiry, items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist inquiry")
	}
	s.metrics.IncInquirySubmitted()

	s.sendNotifications(ctx, user, created)

	// The snapshot going stale is acceptable; the inquiry is already durable.
	if fromCart {
		if err := s.cart.Clear(ctx, userID); err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "failed to clear cart after inquiry")
		}
	}
	return toDTO(created), nil
}

func (s *service) resolveItems(ctx context.Context, userID uuid.UUID, input SubmitInput) ([]models.InquiryItem, bool, error) {
	if len(input.CoffeeItems) > 0 {
		items := make([]models.InquiryItem, 0, len(input.CoffeeItems))
		for _, item := range input.CoffeeItems {
			if item.Quantity < 1 {
				return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
			}
			if !item.PreferredLocation.IsValid() {
				return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "unknown location")
			}
			if strings.TrimSpace(item.CoffeeName) == "" {
				return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "coffee name is required")
			}
			items = append(items, models.InquiryItem{
				CoffeeID:          item.CoffeeID,
				CoffeeName:        item.CoffeeName,
				Quantity:          item.Quantity,
				PreferredLocation: item.PreferredLocation,
			})
		}
		return items, false, nil
	}

	snapshot, err := s.cart.Load(ctx, userID)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(snapshot) == 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "inquiry requires at least one item")
	}
	items := make([]models.InquiryItem, 0, len(snapshot))
	for _, entry := range snapshot {
		items = append(items, models.InquiryItem{
			CoffeeID:          entry.CoffeeID,
			CoffeeName:        entry.CoffeeName,
			Quantity:          entry.Quantity,
			PreferredLocation: entry.PreferredLocation,
		})
	}
	return items, true, nil
}

func (s *service) sendNotifications(ctx context.Context, user *models.User, inquiry *models.Inquiry) {
	itemList := itemListHTML(inquiry.Items)

	var combined error
	if err := s.mailer.Send(ctx, mail.Message{
		To:      s.cfg.AdminEmail,
		Subject: fmt.Sprintf("New inquiry from %s", user.CompanyName),
		HTML:    adminInquiryHTML(user, inquiry, itemList, s.cfg.DashboardBaseURL),
	}); err != nil {
		combined = multierr.Append(combined, fmt.Errorf("admin notification: %w", err))
		s.metrics.IncInquiryEmailFailed()
	}
	if err := s.mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: "We received your inquiry",
		HTML:    buyerInquiryHTML(user, itemList),
	}); err != nil {
		combined = multierr.Append(combined, fmt.Errorf("buyer confirmation: %w", err))
		s.metrics.IncInquiryEmailFailed()
	}
	if combined != nil {
		s.logg.Error(s.logg.WithField(ctx, "inquiry_id", inquiry.ID.String()), "inquiry notification emails failed", combined)
	}
}

// ListMine returns one page of the caller's own inquiries.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*ListResponse, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inquiries")
	}
	return &ListResponse{Inquiries: toDTOList(rows), NextCursor: next}, nil
}

// ListAll returns one page across all buyers, optionally filtered by status.
func (s *service) ListAll(ctx context.Context, status *enums.InquiryStatus, params pagination.Params) (*ListResponse, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown inquiry status")
	}
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.ListAll(ctx, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inquiries")
	}
	return &ListResponse{Inquiries: toDTOList(rows), NextCursor: next}, nil
}

// allowedTransitions closes the status graph: an inquiry leaves "new" exactly
// once, may go from reviewed to a terminal state, and terminal states stay.
var allowedTransitions = map[enums.InquiryStatus][]enums.InquiryStatus{
	enums.InquiryStatusNew:      {enums.InquiryStatusReviewed, enums.InquiryStatusCompleted, enums.InquiryStatusCancelled},
	enums.InquiryStatusReviewed: {enums.InquiryStatusCompleted, enums.InquiryStatusCancelled},
}

func transitionAllowed(from, to enums.InquiryStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an inquiry through the follow-up lifecycle.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*InquiryDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown inquiry status")
	}

	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inquiry")
	}
	if !transitionAllowed(inquiry.Status, input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move inquiry from %s to %s", inquiry.Status, input.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update inquiry status")
	}
	inquiry.Status = input.Status
	return toDTO(inquiry), nil
}
