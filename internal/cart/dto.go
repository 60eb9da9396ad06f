package cart

import (
	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// Item is one pending inquiry line. CoffeeName is captured at add time and
// not kept in sync with later catalog edits.
type Item struct {
	CoffeeID          uuid.UUID      `json:"coffee_id"`
	CoffeeName        string         `json:"coffee_name"`
	Quantity          int            `json:"quantity"`
	PreferredLocation enums.Location `json:"preferred_location"`
}

// CartDTO is the read shape returned to the portal. ItemCount counts entries,
// not the sum of quantities.
type CartDTO struct {
	Items     []Item `json:"items"`
	ItemCount int    `json:"item_count"`
}

// AddItemInput is the payload for adding a lot to the cart.
type AddItemInput struct {
	CoffeeID          uuid.UUID      `json:"coffee_id" validate:"required"`
	Quantity          int            `json:"quantity" validate:"required,min=1"`
	PreferredLocation enums.Location `json:"preferred_location" validate:"required"`
}

func toDTO(items []Item) *CartDTO {
	if items == nil {
		items = []Item{}
	}
	return &CartDTO{
		Items:     items,
		ItemCount: len(items),
	}
}
