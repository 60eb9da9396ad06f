package inquiries

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/enums"
)

// SubmitItemInput is one explicitly supplied inquiry line. The display name
// travels with the request because the caller's cart already captured it.
type SubmitItemInput struct {
	CoffeeID          uuid.UUID      `json:"coffee_id" validate:"required"`
	CoffeeName        string         `json:"coffee_name" validate:"required"`
	Quantity          int            `json:"quantity" validate:"required,min=1"`
	PreferredLocation enums.Location `json:"preferred_location" validate:"required"`
}

// SubmitInput is the inquiry submission payload. An empty CoffeeItems list
// falls back to the caller's current cart snapshot.
type SubmitInput struct {
	CoffeeItems        []SubmitItemInput `json:"coffee_items" validate:"omitempty,dive"`
	TargetShipmentDate *time.Time        `json:"target_shipment_date"`
	Message            *string           `json:"message"`
}

// UpdateStatusInput is the admin payload for moving an inquiry through its
// follow-up lifecycle.
type UpdateStatusInput struct {
	Status enums.InquiryStatus `json:"status" validate:"required"`
}

// InquiryItemDTO is the read shape of one persisted inquiry line.
type InquiryItemDTO struct {
	CoffeeID          uuid.UUID      `json:"coffee_id"`
	CoffeeName        string         `json:"coffee_name"`
	Quantity          int            `json:"quantity"`
	PreferredLocation enums.Location `json:"preferred_location"`
	Position          int            `json:"position"`
}

// InquiryDTO is the read shape of a persisted inquiry.
type InquiryDTO struct {
	ID                 uuid.UUID           `json:"id"`
	UserID             uuid.UUID           `json:"user_id"`
	Status             enums.InquiryStatus `json:"status"`
	TargetShipmentDate *time.Time          `json:"target_shipment_date,omitempty"`
	Message            *string             `json:"message,omitempty"`
	Items              []InquiryItemDTO    `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
}

// ListResponse is a cursor-paginated page of inquiries.
type ListResponse struct {
	Inquiries  []InquiryDTO `json:"inquiries"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func toItemDTO(item models.InquiryItem) InquiryItemDTO {
	return InquiryItemDTO{
		CoffeeID:          item.CoffeeID,
		CoffeeName:        item.CoffeeName,
		Quantity:          item.Quantity,
		PreferredLocation: item.PreferredLocation,
		Position:          item.Position,
	}
}

func toDTO(inquiry *models.Inquiry) *InquiryDTO {
	items := make([]InquiryItemDTO, 0, len(inquiry.Items))
	for _, item := range inquiry.Items {
		items = append(items, toItemDTO(item))
	}
	return &InquiryDTO{
		ID:                 inquiry.ID,
		UserID:             inquiry.UserID,
		Status:             inquiry.Status,
		TargetShipmentDate: inquiry.TargetShipmentDate,
		Message:            inquiry.Message,
		Items:              items,
		CreatedAt:          inquiry.CreatedAt,
	}
}

func toDTOList(rows []models.Inquiry) []InquiryDTO {
	out := make([]InquiryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out
}
