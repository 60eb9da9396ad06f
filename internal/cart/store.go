package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/greenacres/greenacres-backend/pkg/enums"
	"github.com/greenacres/greenacres-backend/pkg/logger"
	redisclient "github.com/greenacres/greenacres-backend/pkg/redis"
)

// snapshotItem is the stored wire shape. The key names predate this service
// and must stay stable so existing snapshots keep parsing.
type snapshotItem struct {
	CoffeeID          string `json:"coffeeId"`
	CoffeeName        string `json:"coffeeName"`
	Quantity          int    `json:"quantity"`
	PreferredLocation string `json:"preferredLocation"`
}

// Store keeps one JSON snapshot per buyer in Redis. Every mutation rewrites
// the whole snapshot; an unparseable snapshot degrades to an empty cart.
type Store struct {
	redis redisclient.CartStore
	logg  *logger.Logger
}

// NewStore builds a snapshot store over the provided Redis client.
func NewStore(redis redisclient.CartStore, logg *logger.Logger) (*Store, error) {
	if redis == nil {
		return nil, fmt.Errorf("redis cart store required")
	}
	return &Store{redis: redis, logg: logg}, nil
}

// Load reads the buyer's snapshot. Missing or unparseable snapshots return
// an empty list, never an error the caller has to branch on; entries with a
// malformed coffee id are dropped individually so the rest of the cart
// survives.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	raw, err := s.redis.Get(ctx, s.redis.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	var stored []snapshotItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "cart snapshot unparseable, starting empty")
		}
		return []Item{}, nil
	}

	items := make([]Item, 0, len(stored))
	for _, entry := range stored {
		coffeeID, err := uuid.Parse(entry.CoffeeID)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "cart snapshot entry invalid, skipping")
			}
			continue
		}
		items = append(items, Item{
			CoffeeID:          coffeeID,
			CoffeeName:        entry.CoffeeName,
			Quantity:          entry.Quantity,
			PreferredLocation: enums.Location(entry.PreferredLocation),
		})
	}
	return items, nil
}

// Save overwrites the buyer's snapshot with the provided list.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, items []Item) error {
	stored := make([]snapshotItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, snapshotItem{
			CoffeeID:          item.CoffeeID.String(),
			CoffeeName:        item.CoffeeName,
			Quantity:          item.Quantity,
			PreferredLocation: string(item.PreferredLocation),
		})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.redis.Set(ctx, s.redis.CartKey(userID.String()), string(raw), 0); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Clear erases the buyer's snapshot entirely.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.redis.Del(ctx, s.redis.CartKey(userID.String())); err != nil {
		return fmt.Errorf("clear cart snapshot: %w", err)
	}
	return nil
}
