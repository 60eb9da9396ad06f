package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/internal/catalog"
	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
)

// Service exposes the per-buyer cart operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	Remove(ctx context.Context, userID, coffeeID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type snapshotStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]Item, error)
	Save(ctx context.Context, userID uuid.UUID, items []Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type coffeeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coffee, error)
}

type service struct {
	store  snapshotStore
	coffee coffeeLoader
}

// NewService builds a cart service over the snapshot store and catalog.
func NewService(store snapshotStore, coffee coffeeLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart snapshot store required")
	}
	if coffee == nil {
		return nil, fmt.Errorf("coffee loader required")
	}
	return &service{store: store, coffee: coffee}, nil
}

// Get returns the current cart.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return toDTO(items), nil
}

// Add validates the lot against the catalog and merges it into the cart.
// An entry with the same (coffee, location) pair absorbs the new quantity in
// place; anything else appends at the end.
func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if !input.PreferredLocation.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown location")
	}

	coffee, err := s.coffee.FindByID(ctx, input.CoffeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coffee")
	}
	if !coffee.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
	}

	price := catalog.PriceAt(coffee, input.PreferredLocation)
	if price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coffee is not offered at the selected location")
	}
	if price.Availability == enums.AvailabilityOutOfStock {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "coffee is out of stock at the selected location")
	}

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	merged := false
	for i := range items {
		if items[i].CoffeeID == input.CoffeeID && items[i].PreferredLocation == input.PreferredLocation {
			items[i].Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{
			CoffeeID:          input.CoffeeID,
			CoffeeName:        coffee.DisplayName(),
			Quantity:          input.Quantity,
			PreferredLocation: input.PreferredLocation,
		})
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return toDTO(items), nil
}

// Remove drops every entry for the coffee, regardless of location. Removing
// an absent coffee is a no-op.
func (s *service) Remove(ctx context.Context, userID, coffeeID uuid.UUID) (*CartDTO, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	kept := items[:0]
	for _, item := range items {
		if item.CoffeeID != coffeeID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return toDTO(items), nil
	}

	if err := s.store.Save(ctx, userID, kept); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return toDTO(kept), nil
}

// Clear empties the cart and erases the durable snapshot.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
