package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenacres/greenacres-backend/pkg/enums"
)

type fakeCartStore struct {
	values map[string]string
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{values: map[string]string{}}
}

func (f *fakeCartStore) Get(_ context.Context, key string) (string, error) {
	raw, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return raw, nil
}

func (f *fakeCartStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeCartStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeCartStore) CartKey(userID string) string {
	return "ga:cart:" + userID
}

func TestStoreRoundTrip(t *testing.T) {
	redis := newFakeCartStore()
	store, err := NewStore(redis, nil)
	require.NoError(t, err)

	userID := uuid.New()
	items := []Item{
		{CoffeeID: uuid.New(), CoffeeName: "Yirgacheffe G1 Natural", Quantity: 3, PreferredLocation: enums.LocationTrieste},
		{CoffeeID: uuid.New(), CoffeeName: "Sidamo G2 Washed", Quantity: 1, PreferredLocation: enums.LocationAddisAbaba},
	}
	require.NoError(t, store.Save(context.Background(), userID, items))

	loaded, err := store.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestStoreLoadMissingSnapshot(t *testing.T) {
	store, err := NewStore(newFakeCartStore(), nil)
	require.NoError(t, err)

	loaded, err := store.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestStoreSnapshotWireFormat(t *testing.T) {
	redis := newFakeCartStore()
	store, err := NewStore(redis, nil)
	require.NoError(t, err)

	userID := uuid.New()
	coffeeID := uuid.New()
	require.NoError(t, store.Save(context.Background(), userID, []Item{
		{CoffeeID: coffeeID, CoffeeName: "Guji G1", Quantity: 2, PreferredLocation: enums.LocationGenoa},
	}))

	raw := redis.values[redis.CartKey(userID.String())]
	assert.Contains(t, raw, `"coffeeId":"`+coffeeID.String()+`"`)
	assert.Contains(t, raw, `"coffeeName":"Guji G1"`)
	assert.Contains(t, raw, `"quantity":2`)
	assert.Contains(t, raw, `"preferredLocation":"genoa"`)
}

func TestStoreLoadCorruptSnapshot(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{{nonsense"},
		{name: "wrong shape", raw: `{"items":true}`},
		{name: "invalid coffee id", raw: `[{"coffeeId":"not-a-uuid","coffeeName":"x","quantity":1,"preferredLocation":"trieste"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			redis := newFakeCartStore()
			store, err := NewStore(redis, nil)
			require.NoError(t, err)

			userID := uuid.New()
			redis.values[redis.CartKey(userID.String())] = tc.raw

			loaded, err := store.Load(context.Background(), userID)
			require.NoError(t, err)
			assert.Empty(t, loaded)
		})
	}
}

func TestStoreLoadSkipsInvalidEntriesKeepsRest(t *testing.T) {
	redis := newFakeCartStore()
	store, err := NewStore(redis, nil)
	require.NoError(t, err)

	userID := uuid.New()
	keptID := uuid.New()
	redis.values[redis.CartKey(userID.String())] = `[` +
		`{"coffeeId":"not-a-uuid","coffeeName":"broken","quantity":1,"preferredLocation":"trieste"},` +
		`{"coffeeId":"` + keptID.String() + `","coffeeName":"Yirgacheffe G1","quantity":4,"preferredLocation":"genoa"}` +
		`]`

	loaded, err := store.Load(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, keptID, loaded[0].CoffeeID)
	assert.Equal(t, "Yirgacheffe G1", loaded[0].CoffeeName)
	assert.Equal(t, 4, loaded[0].Quantity)
	assert.Equal(t, enums.LocationGenoa, loaded[0].PreferredLocation)
}

func TestStoreClearDeletesKey(t *testing.T) {
	redis := newFakeCartStore()
	store, err := NewStore(redis, nil)
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, store.Save(context.Background(), userID, []Item{
		{CoffeeID: uuid.New(), CoffeeName: "Limu G2", Quantity: 1, PreferredLocation: enums.LocationTrieste},
	}))
	require.NoError(t, store.Clear(context.Background(), userID))

	_, ok := redis.values[redis.CartKey(userID.String())]
	assert.False(t, ok)
}
