package cart

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

type stubCoffeeLoader struct {
	coffees map[uuid.UUID]*models.Coffee
}

func (s *stubCoffeeLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Coffee, error) {
	coffee, ok := s.coffees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return coffee, nil
}

func testCoffee(region, grade string, prep enums.Preparation, active bool, prices ...models.CoffeePrice) *models.Coffee {
	return &models.Coffee{
		ID:          uuid.New(),
		Region:      region,
		Grade:       grade,
		Preparation: prep,
		IsActive:    active,
		Prices:      prices,
	}
}

func priceAt(location enums.Location, availability enums.Availability) models.CoffeePrice {
	return models.CoffeePrice{
		ID:           uuid.New(),
		Location:     location,
		PricePerLb:   decimal.NewFromFloat(4.25),
		Availability: availability,
	}
}

func newTestService(t *testing.T, coffees ...*models.Coffee) (Service, *Store) {
	t.Helper()
	store, err := NewStore(newFakeCartStore(), nil)
	require.NoError(t, err)

	loader := &stubCoffeeLoader{coffees: map[uuid.UUID]*models.Coffee{}}
	for _, coffee := range coffees {
		loader.coffees[coffee.ID] = coffee
	}

	svc, err := NewService(store, loader)
	require.NoError(t, err)
	return svc, store
}

func TestAddFirstItem(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "G1", enums.PreparationNatural, true, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	svc, _ := newTestService(t, coffee)
	userID := uuid.New()

	cart, err := svc.Add(context.Background(), userID, AddItemInput{
		CoffeeID:          coffee.ID,
		Quantity:          5,
		PreferredLocation: enums.LocationTrieste,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.ItemCount)
	assert.Equal(t, coffee.ID, cart.Items[0].CoffeeID)
	assert.Equal(t, "Yirgacheffe G1 Natural", cart.Items[0].CoffeeName)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, enums.LocationTrieste, cart.Items[0].PreferredLocation)
}

func TestAddMergesSameCoffeeAndLocation(t *testing.T) {
	first := testCoffee("Guji", "G1", enums.PreparationNatural, true, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	second := testCoffee("Sidamo", "G2", enums.PreparationWashed, true, priceAt(enums.LocationGenoa, enums.AvailabilityInStock))
	svc, _ := newTestService(t, first, second)
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, AddItemInput{CoffeeID: first.ID, Quantity: 2, PreferredLocation: enums.LocationTrieste})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), userID, AddItemInput{CoffeeID: second.ID, Quantity: 1, PreferredLocation: enums.LocationGenoa})
	require.NoError(t, err)

	// The duplicate pair merges into the existing entry without reordering.
	cart, err := svc.Add(context.Background(), userID, AddItemInput{CoffeeID: first.ID, Quantity: 3, PreferredLocation: enums.LocationTrieste})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, first.ID, cart.Items[0].CoffeeID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, second.ID, cart.Items[1].CoffeeID)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestAddSameCoffeeDifferentLocationAppends(t *testing.T) {
	coffee := testCoffee("Limu", "G2", enums.PreparationWashed, true,
		priceAt(enums.LocationTrieste, enums.AvailabilityInStock),
		priceAt(enums.LocationGenoa, enums.AvailabilityInStock),
	)
	svc, _ := newTestService(t, coffee)
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, AddItemInput{CoffeeID: coffee.ID, Quantity: 2, PreferredLocation: enums.LocationTrieste})
	require.NoError(t, err)
	cart, err := svc.Add(context.Background(), userID, AddItemInput{CoffeeID: coffee.ID, Quantity: 4, PreferredLocation: enums.LocationGenoa})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, enums.LocationTrieste, cart.Items[0].PreferredLocation)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, enums.LocationGenoa, cart.Items[1].PreferredLocation)
	assert.Equal(t, 4, cart.Items[1].Quantity)
}

func TestAddValidation(t *testing.T) {
	inStock := testCoffee("Harrar", "G4", enums.PreparationNatural, true, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	outOfStock := testCoffee("Djimmah", "G5", enums.PreparationNatural, true, priceAt(enums.LocationTrieste, enums.AvailabilityOutOfStock))
	inactive := testCoffee("Bale", "G3", enums.PreparationWashed, false, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	svc, _ := newTestService(t, inStock, outOfStock, inactive)

	cases := []struct {
		name     string
		input    AddItemInput
		wantCode pkgerrors.Code
	}{
		{
			name:     "zero quantity",
			input:    AddItemInput{CoffeeID: inStock.ID, Quantity: 0, PreferredLocation: enums.LocationTrieste},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "unknown location",
			input:    AddItemInput{CoffeeID: inStock.ID, Quantity: 1, PreferredLocation: enums.Location("rotterdam")},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "unknown coffee",
			input:    AddItemInput{CoffeeID: uuid.New(), Quantity: 1, PreferredLocation: enums.LocationTrieste},
			wantCode: pkgerrors.CodeNotFound,
		},
		{
			name:     "inactive coffee",
			input:    AddItemInput{CoffeeID: inactive.ID, Quantity: 1, PreferredLocation: enums.LocationTrieste},
			wantCode: pkgerrors.CodeNotFound,
		},
		{
			name:     "not offered at location",
			input:    AddItemInput{CoffeeID: inStock.ID, Quantity: 1, PreferredLocation: enums.LocationGenoa},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name:     "out of stock at location",
			input:    AddItemInput{CoffeeID: outOfStock.ID, Quantity: 1, PreferredLocation: enums.LocationTrieste},
			wantCode: pkgerrors.CodeStateConflict,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), uuid.New(), tc.input)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.wantCode, appErr.Code())
		})
	}
}

func TestRemoveDropsEveryLocationForCoffee(t *testing.T) {
	coffee := testCoffee("Limu", "G2", enums.PreparationWashed, true,
		priceAt(enums.LocationTrieste, enums.AvailabilityInStock),
		priceAt(enums.LocationGenoa, enums.AvailabilityInStock),
	)
	other := testCoffee("Guji", "G1", enums.PreparationNatural, true, priceAt(enums.LocationAddisAbaba, enums.AvailabilityInStock))
	svc, _ := newTestService(t, coffee, other)
	userID := uuid.New()

	for _, input := range []AddItemInput{
		{CoffeeID: coffee.ID, Quantity: 1, PreferredLocation: enums.LocationTrieste},
		{CoffeeID: other.ID, Quantity: 2, PreferredLocation: enums.LocationAddisAbaba},
		{CoffeeID: coffee.ID, Quantity: 3, PreferredLocation: enums.LocationGenoa},
	} {
		_, err := svc.Add(context.Background(), userID, input)
		require.NoError(t, err)
	}

	cart, err := svc.Remove(context.Background(), userID, coffee.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].CoffeeID)
}

func TestRemoveAbsentCoffeeIsNoOp(t *testing.T) {
	coffee := testCoffee("Guji", "G1", enums.PreparationNatural, true, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	svc, _ := newTestService(t, coffee)
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, AddItemInput{CoffeeID: coffee.ID, Quantity: 2, PreferredLocation: enums.LocationTrieste})
	require.NoError(t, err)

	cart, err := svc.Remove(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, coffee.ID, cart.Items[0].CoffeeID)
}

func TestClearEmptiesCart(t *testing.T) {
	coffee := testCoffee("Sidamo", "G2", enums.PreparationWashed, true, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	svc, _ := newTestService(t, coffee)
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, AddItemInput{CoffeeID: coffee.ID, Quantity: 1, PreferredLocation: enums.LocationTrieste})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(context.Background(), userID))

	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestGetEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	cart, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestGetSurvivesProcessRestart(t *testing.T) {
	coffee := testCoffee("Yirgacheffe", "G1", enums.PreparationWashed, true, priceAt(enums.LocationTrieste, enums.AvailabilityInStock))
	redis := newFakeCartStore()
	store, err := NewStore(redis, nil)
	require.NoError(t, err)
	loader := &stubCoffeeLoader{coffees: map[uuid.UUID]*models.Coffee{coffee.ID: coffee}}
	svc, err := NewService(store, loader)
	require.NoError(t, err)

	userID := uuid.New()
	_, err = svc.Add(context.Background(), userID, AddItemInput{CoffeeID: coffee.ID, Quantity: 2, PreferredLocation: enums.LocationTrieste})
	require.NoError(t, err)

	// A fresh service over the same Redis contents sees the same cart.
	restartedStore, err := NewStore(redis, nil)
	require.NoError(t, err)
	restarted, err := NewService(restartedStore, loader)
	require.NoError(t, err)

	cart, err := restarted.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}
