package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
	pkgerrors "github.com/greenacres/greenacres-backend/pkg/errors"
)

type stubCatalogRepo struct {
	coffees map[uuid.UUID]*models.Coffee
}

func newStubCatalogRepo(coffees ...*models.Coffee) *stubCatalogRepo {
	s := &stubCatalogRepo{coffees: map[uuid.UUID]*models.Coffee{}}
	for _, c := range coffees {
		s.coffees[c.ID] = c
	}
	return s
}

func (s *stubCatalogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Coffee, error) {
	if c, ok := s.coffees[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) List(ctx context.Context, activeOnly bool) ([]models.Coffee, error) {
	var out []models.Coffee
	for _, c := range s.coffees {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func sampleCoffee(active bool) *models.Coffee {
	station := "Idido"
	return &models.Coffee{
		ID:            uuid.New(),
		ReferenceCode: "ET-100",
		Region:        "Yirgacheffe",
		Grade:         "G1",
		Station:       &station,
		Preparation:   enums.PreparationNatural,
		CropYear:      "2025/2026",
		BagSizeKg:     60,
		IsActive:      active,
		Prices: []models.CoffeePrice{
			{
				Location:     enums.LocationTrieste,
				PricePerLb:   decimal.RequireFromString("6.20"),
				Availability: enums.AvailabilityInStock,
			},
			{
				Location:     enums.LocationGenoa,
				PricePerLb:   decimal.RequireFromString("6.35"),
				Availability: enums.AvailabilityOutOfStock,
			},
		},
	}
}

func TestGetPublicOmitsPricing(t *testing.T) {
	coffee := sampleCoffee(true)
	svc, err := NewService(newStubCatalogRepo(coffee))
	require.NoError(t, err)

	got, err := svc.GetPublic(context.Background(), coffee.ID)
	require.NoError(t, err)

	assert.Equal(t, "Yirgacheffe G1 Natural", got.Name)
	assert.Equal(t, "ET-100", got.ReferenceCode)
	assert.NotNil(t, got.TastingNotes, "tasting notes must encode as [] not null")
}

func TestGetPortalIncludesLocationLabels(t *testing.T) {
	coffee := sampleCoffee(true)
	svc, err := NewService(newStubCatalogRepo(coffee))
	require.NoError(t, err)

	got, err := svc.GetPortal(context.Background(), coffee.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 2)

	assert.Equal(t, enums.LocationTrieste, got.Prices[0].Location)
	assert.Equal(t, "Trieste, Italy", got.Prices[0].LocationLabel)
	assert.Equal(t, enums.AvailabilityOutOfStock, got.Prices[1].Availability)
}

func TestGetHidesInactiveCoffee(t *testing.T) {
	coffee := sampleCoffee(false)
	svc, err := NewService(newStubCatalogRepo(coffee))
	require.NoError(t, err)

	for _, get := range []func() error{
		func() error { _, err := svc.GetPublic(context.Background(), coffee.ID); return err },
		func() error { _, err := svc.GetPortal(context.Background(), coffee.ID); return err },
	} {
		err := get()
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr, "expected typed error, got %v", err)
		assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
	}
}

func TestListPublicSkipsInactive(t *testing.T) {
	active := sampleCoffee(true)
	retired := sampleCoffee(false)
	svc, err := NewService(newStubCatalogRepo(active, retired))
	require.NoError(t, err)

	got, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}
