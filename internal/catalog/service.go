package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
)

// Service exposes the public and portal catalog read paths.
type Service interface {
	ListPublic(ctx context.Context) ([]PublicCoffeeDTO, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*PublicCoffeeDTO, error)
	ListPortal(ctx context.Context) ([]PortalCoffeeDTO, error)
	GetPortal(ctx context.Context, id uuid.UUID) (*PortalCoffeeDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coffee, error)
	List(ctx context.Context, activeOnly bool) ([]models.Coffee, error)
}

type service struct {
	repo repository
}

// NewService constructs a catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListPublic returns active lots without pricing.
func (s *service) ListPublic(ctx context.Context) ([]PublicCoffeeDTO, error) {
	coffees, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list coffees")
	}
	out := make([]PublicCoffeeDTO, 0, len(coffees))
	for i := range coffees {
		out = append(out, *publicFromModel(&coffees[i]))
	}
	return out, nil
}

// GetPublic returns one active lot without pricing.
func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (*PublicCoffeeDTO, error) {
	coffee, err := s.activeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return publicFromModel(coffee), nil
}

// ListPortal returns active lots with per-location pricing.
func (s *service) ListPortal(ctx context.Context) ([]PortalCoffeeDTO, error) {
	coffees, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list coffees")
	}
	out := make([]PortalCoffeeDTO, 0, len(coffees))
	for i := range coffees {
		out = append(out, *portalFromModel(&coffees[i]))
	}
	return out, nil
}

// GetPortal returns one active lot with pricing.
func (s *service) GetPortal(ctx context.Context, id uuid.UUID) (*PortalCoffeeDTO, error) {
	coffee, err := s.activeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return portalFromModel(coffee), nil
}

func (s *service) activeByID(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	coffee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coffee")
	}
	if !coffee.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
	}
	return coffee, nil
}
